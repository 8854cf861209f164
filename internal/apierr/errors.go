// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apierr defines the typed errors returned by the gourmet client.
//
// Every error carries a Code so callers can tell an authentication failure,
// a missing recipe and a transient negotiation failure apart:
//
//	if errors.Is(err, apierr.ErrNotFound) {
//	    // show the not-found view
//	}
package apierr

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Code classifies a client error.
type Code string

const (
	// CodeTransport is a network failure. It is never retried.
	CodeTransport Code = "TRANSPORT"
	// CodeUpstreamRejected is a terminal non-2xx response.
	CodeUpstreamRejected Code = "UPSTREAM_REJECTED"
	// CodeNegotiationExhausted means every header variant was refused.
	CodeNegotiationExhausted Code = "NEGOTIATION_EXHAUSTED"
	// CodeNotFound means the requested recipe does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeAuthFailed means the login was refused.
	CodeAuthFailed Code = "AUTH_FAILED"
	// CodeMalformedResponse is a successful response whose body could not be decoded.
	CodeMalformedResponse Code = "MALFORMED_RESPONSE"
	// CodeInvalidRequest is caller input rejected before any network traffic.
	CodeInvalidRequest Code = "INVALID_REQUEST"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrTransport            = &Error{Code: CodeTransport}
	ErrUpstreamRejected     = &Error{Code: CodeUpstreamRejected}
	ErrNegotiationExhausted = &Error{Code: CodeNegotiationExhausted}
	ErrNotFound             = &Error{Code: CodeNotFound}
	ErrAuthFailed           = &Error{Code: CodeAuthFailed}
	ErrMalformedResponse    = &Error{Code: CodeMalformedResponse}
	ErrInvalidRequest       = &Error{Code: CodeInvalidRequest}
)

// maxBodyLen bounds the response text kept for diagnostics.
const maxBodyLen = 512

// Error is a structured client error.
type Error struct {
	Code Code

	// Op names the logical request, e.g. "GET /recipes/42".
	Op string

	// Status is the HTTP status code, when a response was received.
	Status int

	// Body is the (truncated) response text, for diagnostics.
	Body string

	// Attempts is the number of physical requests made.
	Attempts int

	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Code))
	b.WriteString("]")
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.Status)
	}
	if e.Code == CodeNegotiationExhausted && e.Attempts > 0 {
		fmt.Fprintf(&b, ": all %d header variants rejected", e.Attempts)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, ": %q", e.Body)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an error with the given code for op.
func New(code Code, op string) *Error {
	return &Error{Code: code, Op: op}
}

// Wrap creates an error with the given code for op, wrapping cause.
func Wrap(code Code, op string, cause error) *Error {
	return &Error{Code: code, Op: op, Cause: cause}
}

// Rejected creates an UPSTREAM_REJECTED error carrying status and body text.
func Rejected(op string, status int, body []byte) *Error {
	return &Error{
		Code:   CodeUpstreamRejected,
		Op:     op,
		Status: status,
		Body:   Truncate(string(body)),
	}
}

// Truncate shortens s to the diagnostic body limit without splitting a rune.
func Truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxBodyLen {
		return s
	}
	cut := maxBodyLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// CodeOf returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// StatusOf returns the first HTTP status found in err's chain, or 0.
func StatusOf(err error) int {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return 0
		}
		if e.Status != 0 {
			return e.Status
		}
		err = e.Cause
	}
	return 0
}
