// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"strings"
)

// ErrIncompleteCredential is returned by Credential.Validate.
var ErrIncompleteCredential = errors.New("credential requires both a token and a username")

// Credential is the bearer token and username supplied by the caller on
// every authenticated call. The client forwards it and never stores it.
type Credential struct {
	Token    string `json:"token" yaml:"token"`
	Username string `json:"username" yaml:"username"`
}

// Validate reports whether both parts of the credential are present.
func (c Credential) Validate() error {
	if strings.TrimSpace(c.Token) == "" || strings.TrimSpace(c.Username) == "" {
		return ErrIncompleteCredential
	}
	return nil
}

// String hides the token so a credential can be printed safely.
func (c Credential) String() string {
	return "Credential{Username: " + c.Username + ", Token: <redacted>}"
}

// LoginResult is the decoded login response.
type LoginResult struct {
	// Token is the bearer token resolved from token, access_token or accessToken.
	Token string `json:"token" yaml:"token"`

	// Payload is the full decoded response body.
	Payload map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Credential pairs the login token with the username that logged in.
func (r LoginResult) Credential(username string) Credential {
	return Credential{Token: r.Token, Username: username}
}

// Ack acknowledges a mutating favorites call. Payload is the decoded JSON
// body, the raw text when the body is not JSON, or nil when it is empty.
type Ack struct {
	StatusCode int `json:"status_code" yaml:"status_code"`
	Payload    any `json:"payload,omitempty" yaml:"payload,omitempty"`
}
