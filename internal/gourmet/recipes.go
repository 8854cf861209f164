// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gourmet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/gourmet/internal/apierr"
	"github.com/pdiddy/gourmet/internal/normalize"
	"github.com/pdiddy/gourmet/pkg/types"
)

var (
	errEmptyID      = errors.New("recipe id is empty")
	errEmptyWrapper = errors.New("empty recipe wrapper")
)

// recipeOp names single-recipe calls that fail before a path is built.
const recipeOp = "GET /recipes/{id}"

// ListRecipes fetches the full catalogue. It is never cached.
func (c *Client) ListRecipes(ctx context.Context) (types.Recipes, error) {
	r := request{method: http.MethodGet, path: "/recipes"}

	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	body, err := decodeJSON(r.op(), resp)
	if err != nil {
		return nil, err
	}

	recipes := normalize.List(body)
	c.logger.Debug("listed recipes", zap.Int("count", len(recipes)), zap.Int("attempts", resp.Attempts))
	return recipes, nil
}

// RecipePayload fetches one recipe and returns the decoded upstream object
// without normalizing it. A terminal non-2xx answer is reported as
// NOT_FOUND; running out of header variants stays NEGOTIATION_EXHAUSTED.
func (c *Client) RecipePayload(ctx context.Context, id string) (map[string]any, error) {
	seg, err := idSegment(recipeOp, id)
	if err != nil {
		return nil, err
	}
	r := request{method: http.MethodGet, path: "/recipes/" + seg}

	resp, err := c.send(ctx, r)
	if err != nil {
		// Only a terminal refusal means not found. An exhausted negotiation
		// carries a 406 refusal as its cause and must stay distinct.
		if apierr.CodeOf(err) == apierr.CodeUpstreamRejected {
			return nil, apierr.Wrap(apierr.CodeNotFound, r.op(), err)
		}
		return nil, err
	}
	body, err := decodeJSON(r.op(), resp)
	if err != nil {
		return nil, err
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return nil, &apierr.Error{
			Code:   apierr.CodeMalformedResponse,
			Op:     r.op(),
			Status: resp.StatusCode,
			Cause:  fmt.Errorf("expected a JSON object, got %T", body),
		}
	}
	return obj, nil
}

// GetRecipe fetches and normalizes one recipe.
func (c *Client) GetRecipe(ctx context.Context, id string) (types.Recipe, error) {
	raw, err := c.RecipePayload(ctx, id)
	if err != nil {
		return types.Recipe{}, err
	}
	recipe, ok := normalize.Record(raw)
	if !ok {
		seg, _ := idSegment(recipeOp, id)
		op := request{method: http.MethodGet, path: "/recipes/" + seg}.op()
		return types.Recipe{}, apierr.Wrap(apierr.CodeNotFound, op, errEmptyWrapper)
	}
	return recipe, nil
}
