// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/gourmet/pkg/types"
)

// formatTable writes recipes as a human-readable table to w.
func formatTable(w io.Writer, recipes types.Recipes) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-44s  %-16s  %-10s  %s\n", "ID", "Name", "Category", "Difficulty", "Time")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for _, r := range recipes {
		fmt.Fprintf(w, "%-8s  %-44s  %-16s  %-10s  %s\n",
			clip(r.ID, 8), clip(r.Name, 44), clip(r.Category, 16), clip(r.Difficulty, 10), minutes(r.TotalTime()))
	}

	fmt.Fprintf(w, "\n%d recipes\n", len(recipes))
}

// formatRecipe writes one recipe in full.
func formatRecipe(w io.Writer, r types.Recipe) {
	fmt.Fprintf(w, "%s  (#%s)\n", r.Name, r.ID)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(r.Name))))

	if r.Description != "" {
		fmt.Fprintf(w, "\n%s\n", r.Description)
	}

	fmt.Fprintln(w)
	field(w, "Category", r.Category)
	field(w, "Difficulty", r.Difficulty)
	field(w, "When to eat", r.WhenToEat)
	field(w, "Prep time", optMinutes(r.PrepTime))
	field(w, "Cook time", optMinutes(r.CookTime))
	if r.TotalTime() > 0 {
		field(w, "Total time", minutes(r.TotalTime()))
	}
	field(w, "Servings", optNumber(r.Servings))
	field(w, "Calories", optNumber(r.Calories))
	field(w, "Cost", optNumber(r.Cost))
	field(w, "Image", r.ImageURL)

	section(w, "Ingredients", r.Ingredients)
	section(w, "Instructions", r.Instructions)

	if r.Disclaimer != "" {
		fmt.Fprintf(w, "\nNote: %s\n", r.Disclaimer)
	}
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%-12s %s\n", label+":", value)
}

func section(w io.Writer, title string, t *types.Text) {
	items := t.Items()
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	if !t.IsList() {
		fmt.Fprintln(w, t.String())
		return
	}
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func minutes(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " min"
}

func optMinutes(v *float64) string {
	if v == nil {
		return ""
	}
	return minutes(*v)
}

func optNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
