// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gourmet

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/gourmet/internal/httputil"
	"github.com/pdiddy/gourmet/internal/normalize"
	"github.com/pdiddy/gourmet/pkg/types"
)

func favoritesPath(username string) string {
	return "/users/" + url.PathEscape(username) + "/favorites"
}

// ListFavorites fetches the favorites of cred.Username. Favorites arrive
// wrapped under a "recipe" key and are unwrapped by the normalizer.
func (c *Client) ListFavorites(ctx context.Context, cred types.Credential) (types.Recipes, error) {
	r := request{method: http.MethodGet, path: favoritesPath(cred.Username), cred: &cred}
	if err := authorize(r.op(), cred); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	body, err := decodeJSON(r.op(), resp)
	if err != nil {
		return nil, err
	}

	favorites := normalize.List(body)
	c.logger.Debug("listed favorites", zap.Int("count", len(favorites)), zap.Int("attempts", resp.Attempts))
	return favorites, nil
}

// IsFavorite reports whether recipeID is among the caller's favorites.
func (c *Client) IsFavorite(ctx context.Context, recipeID string, cred types.Credential) (bool, error) {
	favorites, err := c.ListFavorites(ctx, cred)
	if err != nil {
		return false, err
	}
	return favorites.Contains(strings.TrimSpace(recipeID)), nil
}

// AddFavorite adds recipeID to the caller's favorites. Adding a recipe
// twice is reported exactly as upstream answers it.
func (c *Client) AddFavorite(ctx context.Context, recipeID string, cred types.Credential) (types.Ack, error) {
	return c.mutateFavorite(ctx, http.MethodPost, recipeID, cred, nil)
}

// RemoveFavorite removes recipeID from the caller's favorites. A 404 means
// the recipe is already gone and counts as success.
func (c *Client) RemoveFavorite(ctx context.Context, recipeID string, cred types.Credential) (types.Ack, error) {
	return c.mutateFavorite(ctx, http.MethodDelete, recipeID, cred, []int{http.StatusNotFound})
}

func (c *Client) mutateFavorite(ctx context.Context, method, recipeID string, cred types.Credential, allow []int) (types.Ack, error) {
	r := request{
		method: method,
		path:   favoritesPath(cred.Username),
		cred:   &cred,
		allow:  allow,
	}
	if err := authorize(r.op(), cred); err != nil {
		return types.Ack{}, err
	}
	if _, err := idSegment(r.op(), recipeID); err != nil {
		return types.Ack{}, err
	}
	r.query = url.Values{"recipeID": {strings.TrimSpace(recipeID)}}

	resp, err := c.send(ctx, r)
	if err != nil {
		return types.Ack{}, err
	}

	c.logger.Debug("favorite updated",
		zap.String("method", method),
		zap.String("recipe_id", recipeID),
		zap.Int("status", resp.StatusCode),
	)
	return ack(resp), nil
}

// ack builds an acknowledgement from whatever the body holds: JSON when it
// parses, the raw text otherwise.
func ack(resp *httputil.Response) types.Ack {
	a := types.Ack{StatusCode: resp.StatusCode}
	text := bytes.TrimSpace(resp.Body)
	if len(text) == 0 {
		return a
	}
	if v, err := decodeJSON("", resp); err == nil {
		a.Payload = v
		return a
	}
	a.Payload = string(text)
	return a
}
