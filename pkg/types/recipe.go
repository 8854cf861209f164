// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the gourmet client,
// its normalizer and the CLI.
//
// Recipe is the canonical recipe shape: every upstream naming variant is
// folded into it before it leaves the client.
package types

// PlaceholderName is used when the upstream record carries neither a name
// nor a title.
const PlaceholderName = "Recette sans nom"

// Recipe is the canonical recipe record.
type Recipe struct {
	// ID is always a string; numeric upstream ids are stringified.
	ID string `json:"id" yaml:"id"`

	// Name is never empty after normalization.
	Name string `json:"name" yaml:"name"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ImageURL is resolved from image_url, imageUrl or image.
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`

	// Numeric fields are nil when upstream sent nothing usable. A non-nil
	// value is always strictly positive.
	PrepTime *float64 `json:"prep_time,omitempty" yaml:"prep_time,omitempty"`
	CookTime *float64 `json:"cook_time,omitempty" yaml:"cook_time,omitempty"`
	Servings *float64 `json:"servings,omitempty" yaml:"servings,omitempty"`
	Calories *float64 `json:"calories,omitempty" yaml:"calories,omitempty"`
	Cost     *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`

	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	WhenToEat  string `json:"when_to_eat,omitempty" yaml:"when_to_eat,omitempty"`
	Disclaimer string `json:"disclaimer,omitempty" yaml:"disclaimer,omitempty"`

	// Ingredients and Instructions keep the shape upstream sent: a single
	// block of text or an ordered list.
	Ingredients  *Text `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Instructions *Text `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// TotalTime returns prep time plus cook time, or 0 when neither is known.
func (r Recipe) TotalTime() float64 {
	var total float64
	if r.PrepTime != nil {
		total += *r.PrepTime
	}
	if r.CookTime != nil {
		total += *r.CookTime
	}
	return total
}

// Recipes is an ordered list of canonical recipes.
type Recipes []Recipe

// Contains reports whether a recipe with the given id is in the list.
func (rs Recipes) Contains(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range rs {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Number returns a pointer to v. It exists so tests and literals can build
// optional numeric fields inline.
func Number(v float64) *float64 { return &v }
