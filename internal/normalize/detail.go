// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/pdiddy/gourmet/pkg/types"
)

// Detail reconciles a single-recipe payload for the detail view.
//
// It applies the same id, name and image fallback chains as Record but
// does not unwrap a "recipe" key. Numeric fields take the first alternate
// that is a positive number, so a 0 under prep_time falls through to
// prepTime, and string fields accept camelCase alternates.
func Detail(raw map[string]any) types.Recipe {
	if raw == nil {
		raw = map[string]any{}
	}

	r := types.Recipe{
		ID:          firstString(raw, idKeys...),
		Name:        firstString(raw, nameKeys...),
		ImageURL:    firstString(raw, imageKeys...),
		Description: firstStringField(raw, "description"),
		Category:    firstStringField(raw, "category"),
		Difficulty:  firstStringField(raw, "difficulty"),
		WhenToEat:   firstStringField(raw, "when_to_eat", "whenToEat"),
		Disclaimer:  firstStringField(raw, "disclaimer"),

		Ingredients:  types.TextFrom(raw["ingredients"]),
		Instructions: types.TextFrom(raw["instructions"]),
	}
	if r.Name == "" {
		r.Name = types.PlaceholderName
	}
	for _, f := range numericFields {
		f.set(&r, firstPositive(raw, f.keys...))
	}
	return r
}

func firstStringField(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(raw, k); s != "" {
			return s
		}
	}
	return ""
}
