// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists the logged-in credential between CLI runs. The
// token and username live in two files of a secrets directory.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pdiddy/gourmet/internal/secrets"
	"github.com/pdiddy/gourmet/pkg/types"
)

// Secret file names.
const (
	TokenKey    = "auth-token"
	UsernameKey = "auth-username"
)

// ErrNoSession is returned by Load when no complete credential is stored.
var ErrNoSession = errors.New("not logged in")

// Store reads and writes the credential under Dir.
type Store struct {
	Dir string
}

// Load returns the stored credential.
func (s Store) Load() (types.Credential, error) {
	values, err := secrets.Load(s.Dir)
	if err != nil {
		return types.Credential{}, err
	}
	cred := types.Credential{Token: values[TokenKey], Username: values[UsernameKey]}
	if cred.Validate() != nil {
		return types.Credential{}, ErrNoSession
	}
	return cred, nil
}

// Save stores cred, replacing any previous session.
func (s Store) Save(cred types.Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}
	if err := secrets.Save(s.Dir, UsernameKey, cred.Username); err != nil {
		return err
	}
	return secrets.Save(s.Dir, TokenKey, cred.Token)
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s Store) Clear() error {
	return errors.Join(
		secrets.Remove(s.Dir, TokenKey),
		secrets.Remove(s.Dir, UsernameKey),
	)
}

// Expiry returns the exp claim of a JWT without verifying its signature.
// ok is false when the token is not a JWT or carries no expiry.
func Expiry(token string) (exp time.Time, ok bool, err error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("parsing token: %w", err)
	}
	date, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading exp claim: %w", err)
	}
	if date == nil {
		return time.Time{}, false, nil
	}
	return date.Time, true, nil
}
