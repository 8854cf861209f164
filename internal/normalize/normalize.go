// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize folds the upstream service's heterogeneous recipe
// records into the canonical types.Recipe.
//
// Upstream records mix snake_case and camelCase keys, use alternate names
// (title for name, image for image_url), send numbers as strings, and wrap
// favorites under a "recipe" key. Every function here is total: malformed
// or missing fields degrade to absent fields, never to an error.
package normalize

import (
	"github.com/pdiddy/gourmet/pkg/types"
)

var (
	idKeys    = []string{"id", "recipe_id", "recipeId"}
	nameKeys  = []string{"name", "title"}
	imageKeys = []string{"image_url", "imageUrl", "image"}
)

// numericField maps a canonical numeric field to its upstream keys,
// snake_case first.
type numericField struct {
	keys []string
	set  func(r *types.Recipe, v *float64)
}

var numericFields = []numericField{
	{[]string{"prep_time", "prepTime"}, func(r *types.Recipe, v *float64) { r.PrepTime = v }},
	{[]string{"cook_time", "cookTime"}, func(r *types.Recipe, v *float64) { r.CookTime = v }},
	{[]string{"servings"}, func(r *types.Recipe, v *float64) { r.Servings = v }},
	{[]string{"calories"}, func(r *types.Recipe, v *float64) { r.Calories = v }},
	{[]string{"cost"}, func(r *types.Recipe, v *float64) { r.Cost = v }},
}

// Record normalizes one upstream record. ok is false when there is nothing
// to normalize: a nil record, or a "recipe" wrapper that holds no object.
func Record(raw map[string]any) (types.Recipe, bool) {
	if raw == nil {
		return types.Recipe{}, false
	}
	if wrapped, ok := raw["recipe"]; ok {
		inner, isObject := wrapped.(map[string]any)
		if !isObject || inner == nil {
			return types.Recipe{}, false
		}
		raw = inner
	}

	r := types.Recipe{
		ID:          firstString(raw, idKeys...),
		Name:        firstString(raw, nameKeys...),
		ImageURL:    firstString(raw, imageKeys...),
		Description: stringField(raw, "description"),
		Category:    stringField(raw, "category"),
		Difficulty:  stringField(raw, "difficulty"),
		WhenToEat:   stringField(raw, "when_to_eat"),
		Disclaimer:  stringField(raw, "disclaimer"),

		Ingredients:  types.TextFrom(raw["ingredients"]),
		Instructions: types.TextFrom(raw["instructions"]),
	}
	if r.Name == "" {
		r.Name = types.PlaceholderName
	}
	for _, f := range numericFields {
		f.set(&r, positive(firstPresent(raw, f.keys...)))
	}
	return r, true
}

// List extracts and normalizes the records of a list response. The body
// may be a bare array or an object carrying the array under "favorites"
// or, failing that, "recipes". Elements that are not objects or that
// normalize to nothing are dropped; order is preserved.
func List(body any) types.Recipes {
	items := listItems(body)
	out := make(types.Recipes, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if r, ok := Record(obj); ok {
			out = append(out, r)
		}
	}
	return out
}

func listItems(body any) []any {
	switch val := body.(type) {
	case []any:
		return val
	case map[string]any:
		for _, key := range []string{"favorites", "recipes"} {
			if arr, ok := val[key].([]any); ok {
				return arr
			}
		}
	}
	return nil
}
