// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"strings"
)

// Variant is one candidate header set tried during content negotiation.
type Variant struct {
	Name   string
	Header http.Header
}

// Accept returns a variant that sends the given Accept value. An empty
// value yields a variant without an Accept header.
func Accept(value string) Variant {
	value = strings.TrimSpace(value)
	if value == "" {
		return Variant{Name: "no-accept", Header: http.Header{}}
	}
	h := http.Header{}
	h.Set("Accept", value)
	return Variant{Name: "accept:" + value, Header: h}
}

// AcceptVariants builds an ordered variant list from Accept values.
func AcceptVariants(values []string) []Variant {
	out := make([]Variant, 0, len(values))
	for _, v := range values {
		out = append(out, Accept(v))
	}
	return out
}

// defaultAccept is the empirically tuned candidate order. The most
// permissive-looking values go first; the last candidate omits Accept.
var defaultAccept = []string{
	"application/json, text/plain, */*",
	"*/*",
	"application/json",
	"",
}

// DefaultVariants returns a fresh copy of the default candidate list.
func DefaultVariants() []Variant {
	return AcceptVariants(defaultAccept)
}
