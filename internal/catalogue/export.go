// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gourmet/pkg/types"
)

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	FetchedAt *time.Time    `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
	Count     int           `json:"count" yaml:"count"`
	Recipes   types.Recipes `json:"recipes" yaml:"recipes"`
}

// ExportYAML writes the whole snapshot to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	doc, err := s.export(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the whole snapshot to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	doc, err := s.export(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) export(ctx context.Context) (Export, error) {
	recipes, err := s.All(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	if recipes == nil {
		recipes = types.Recipes{}
	}

	doc := Export{Count: len(recipes), Recipes: recipes}
	if t, ok, err := s.FetchedAt(ctx); err != nil {
		return Export{}, err
	} else if ok {
		doc.FetchedAt = &t
	}
	return doc, nil
}
