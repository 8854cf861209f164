// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gourmet is the client for the upstream recipe and favorites
// service. It exposes one method per upstream resource, runs every request
// through the content-negotiation loop in httputil, and returns canonical
// records from the normalize package.
//
// The client holds no mutable state: no cache, no session. Authenticated
// methods take the caller's credential explicitly.
package gourmet

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/gourmet/internal/apierr"
	"github.com/pdiddy/gourmet/internal/httputil"
	"github.com/pdiddy/gourmet/pkg/types"
)

// Client talks to the upstream recipe service. It is safe for concurrent
// use.
type Client struct {
	baseURL   string
	http      httputil.Doer
	variants  []httputil.Variant
	logger    *zap.Logger
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport used for every request.
func WithHTTPClient(d httputil.Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithVariants replaces the ordered header variant candidates.
func WithVariants(v []httputil.Variant) Option {
	return func(c *Client) { c.variants = v }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a client for the service at baseURL. An empty baseURL uses
// types.DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = types.DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one logical upstream call.
type request struct {
	method string
	path   string
	query  url.Values
	body   []byte
	cred   *types.Credential
	allow  []int
}

func (r request) op() string {
	return r.method + " " + r.path
}

// send runs the request through the negotiation loop. Each physical
// attempt gets a fresh body reader.
func (c *Client) send(ctx context.Context, r request) (*httputil.Response, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	n := &httputil.Negotiator{
		Client:   c.http,
		Variants: c.variants,
		Allow:    r.allow,
		Logger:   c.logger,
	}

	return n.Do(ctx, r.op(), func(ctx context.Context, header http.Header) (*http.Request, error) {
		var body io.Reader
		if r.body != nil {
			body = bytes.NewReader(r.body)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, target, body)
		if err != nil {
			return nil, err
		}
		if c.userAgent != "" {
			header.Set("User-Agent", c.userAgent)
		}
		if r.body != nil {
			header.Set("Content-Type", "application/json")
		}
		if r.cred != nil {
			header.Set("Authorization", "Bearer "+r.cred.Token)
		}
		req.Header = header
		return req, nil
	})
}

// decodeJSON parses a response body into untyped JSON. Numbers are kept
// as json.Number so ids survive unchanged. An empty body decodes to nil.
func decodeJSON(op string, resp *httputil.Response) (any, error) {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &apierr.Error{
			Code:     apierr.CodeMalformedResponse,
			Op:       op,
			Status:   resp.StatusCode,
			Body:     apierr.Truncate(string(resp.Body)),
			Attempts: resp.Attempts,
			Cause:    err,
		}
	}
	return v, nil
}

// authorize checks the credential before any network traffic.
func authorize(op string, cred types.Credential) error {
	if err := cred.Validate(); err != nil {
		return apierr.Wrap(apierr.CodeInvalidRequest, op, err)
	}
	return nil
}

// idSegment escapes a recipe id for use as a path segment.
func idSegment(op, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apierr.Wrap(apierr.CodeInvalidRequest, op, errEmptyID)
	}
	return url.PathEscape(id), nil
}
