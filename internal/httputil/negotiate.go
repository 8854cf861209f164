// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by the gourmet client:
// an ordered content-negotiation loop over header variants.
//
// The upstream service sometimes answers 406 to an acceptable request and
// sometimes answers 200 with an HTML error page. Negotiator works around
// both by trying a fixed, ordered list of header variants until one yields
// a usable response.
package httputil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/gourmet/internal/apierr"
)

// RequestIDHeader carries one id across every attempt of a logical call.
const RequestIDHeader = "X-Request-ID"

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestFunc builds the request for one attempt. The header holds the
// variant's headers; the function may add more but must use it as the
// request header set.
type RequestFunc func(ctx context.Context, header http.Header) (*http.Request, error)

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Attempts is the number of physical requests made, including this one.
	Attempts int

	// Variant names the header variant that succeeded.
	Variant string
}

// IsJSON reports whether the declared content type is JSON.
func (r *Response) IsJSON() bool {
	return isJSONContentType(r.Header.Get("Content-Type"))
}

// Negotiator drives a request across an ordered list of header variants.
type Negotiator struct {
	Client Doer

	// Variants are tried in order. When empty, DefaultVariants is used.
	Variants []Variant

	// Allow lists non-2xx statuses accepted as success without a content
	// check (e.g. 404 for deletes).
	Allow []int

	Logger *zap.Logger
}

// errHTMLDisguise marks a success status whose body is an HTML page.
var errHTMLDisguise = errors.New("response is an HTML page despite a success status")

// Do runs the request once per variant until one succeeds.
//
// A 406 or an HTML page behind a success status moves on to the next
// variant. Any other non-2xx status outside Allow is terminal, and so is a
// transport error: a different Accept header cannot fix a broken
// connection. When every variant is refused the error is
// NEGOTIATION_EXHAUSTED with the last refusal as its cause.
func (n *Negotiator) Do(ctx context.Context, op string, build RequestFunc) (*Response, error) {
	variants := n.Variants
	if len(variants) == 0 {
		variants = DefaultVariants()
	}
	log := n.Logger
	if log == nil {
		log = zap.NewNop()
	}

	requestID := uuid.NewString()
	log = log.With(zap.String("op", op), zap.String("request_id", requestID))

	var lastErr error
	for i, v := range variants {
		attempt := i + 1

		header := v.Header.Clone()
		if header == nil {
			header = http.Header{}
		}
		header.Set(RequestIDHeader, requestID)

		req, err := build(ctx, header)
		if err != nil {
			return nil, apierr.Wrap(apierr.CodeInvalidRequest, op, err)
		}

		resp, err := n.Client.Do(req)
		if err != nil {
			log.Debug("transport failure", zap.Int("attempt", attempt), zap.String("variant", v.Name), zap.Error(err))
			return nil, &apierr.Error{Code: apierr.CodeTransport, Op: op, Attempts: attempt, Cause: err}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &apierr.Error{Code: apierr.CodeTransport, Op: op, Status: resp.StatusCode, Attempts: attempt, Cause: fmt.Errorf("reading body: %w", err)}
		}

		log.Debug("attempt",
			zap.Int("attempt", attempt),
			zap.String("variant", v.Name),
			zap.Int("status", resp.StatusCode),
			zap.String("content_type", resp.Header.Get("Content-Type")),
		)

		switch {
		case resp.StatusCode == http.StatusNotAcceptable:
			lastErr = apierr.Rejected(op, resp.StatusCode, body)
			continue

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if isHTMLDisguise(resp.Header.Get("Content-Type"), body) {
				lastErr = &apierr.Error{Code: apierr.CodeUpstreamRejected, Op: op, Status: resp.StatusCode, Cause: errHTMLDisguise}
				continue
			}

		case slices.Contains(n.Allow, resp.StatusCode):

		default:
			return nil, apierr.Rejected(op, resp.StatusCode, body)
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
			Attempts:   attempt,
			Variant:    v.Name,
		}, nil
	}

	log.Warn("header variants exhausted", zap.Int("attempts", len(variants)))
	return nil, &apierr.Error{
		Code:     apierr.CodeNegotiationExhausted,
		Op:       op,
		Attempts: len(variants),
		Cause:    lastErr,
	}
}

// isHTMLDisguise reports whether a success response is really an HTML
// error page: the declared type is not JSON and the text starts with "<!".
func isHTMLDisguise(contentType string, body []byte) bool {
	if isJSONContentType(contentType) {
		return false
	}
	return bytes.HasPrefix(bytes.TrimLeft(body, " \t\r\n\uFEFF"), []byte("<!"))
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
