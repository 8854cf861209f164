// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gourmet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pdiddy/gourmet/internal/apierr"
	"github.com/pdiddy/gourmet/pkg/types"
)

var (
	errMissingLogin = errors.New("username and password are required")
	errNoToken      = errors.New("response carries no token")
)

// tokenKeys lists where the login response may put the bearer token.
var tokenKeys = []string{"token", "access_token", "accessToken"}

// Login exchanges a username and password for a bearer token.
//
// A refusal, including every header variant being refused, is reported as
// AUTH_FAILED wrapping the upstream error. Transport failures are not
// reinterpreted.
func (c *Client) Login(ctx context.Context, username, password string) (types.LoginResult, error) {
	r := request{method: http.MethodPost, path: "/login"}

	if strings.TrimSpace(username) == "" || password == "" {
		return types.LoginResult{}, apierr.Wrap(apierr.CodeInvalidRequest, r.op(), errMissingLogin)
	}

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return types.LoginResult{}, apierr.Wrap(apierr.CodeInvalidRequest, r.op(), err)
	}
	r.body = body

	resp, err := c.send(ctx, r)
	if err != nil {
		// errors.Is walks the chain, so an exhausted negotiation also matches
		// ErrUpstreamRejected through its last 406. Both map to AUTH_FAILED;
		// branch on apierr.CodeOf before giving them different outcomes.
		if errors.Is(err, apierr.ErrUpstreamRejected) || errors.Is(err, apierr.ErrNegotiationExhausted) {
			return types.LoginResult{}, apierr.Wrap(apierr.CodeAuthFailed, r.op(), err)
		}
		return types.LoginResult{}, err
	}

	decoded, err := decodeJSON(r.op(), resp)
	if err != nil {
		return types.LoginResult{}, apierr.Wrap(apierr.CodeAuthFailed, r.op(), err)
	}
	payload, _ := decoded.(map[string]any)

	token := ""
	for _, k := range tokenKeys {
		if s, ok := payload[k].(string); ok && s != "" {
			token = s
			break
		}
	}
	if token == "" {
		return types.LoginResult{}, apierr.Wrap(apierr.CodeAuthFailed, r.op(), errNoToken)
	}

	return types.LoginResult{Token: token, Payload: payload}, nil
}
