// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Text is either a single block of text or an ordered list of lines.
// It remembers which one it was built from and serializes back to the
// same shape.
type Text struct {
	block string
	items []string
	list  bool
}

// Block returns a Text holding a single block of text.
func Block(s string) *Text {
	return &Text{block: s}
}

// List returns a Text holding an ordered list. A nil or empty argument
// still yields a list.
func List(items ...string) *Text {
	out := make([]string, len(items))
	copy(out, items)
	return &Text{items: out, list: true}
}

// IsList reports whether the text was built from a list.
func (t *Text) IsList() bool {
	return t != nil && t.list
}

// Items returns the list entries. A block yields a single entry, or none
// when it is blank.
func (t *Text) Items() []string {
	if t == nil {
		return nil
	}
	if t.list {
		out := make([]string, len(t.items))
		copy(out, t.items)
		return out
	}
	if strings.TrimSpace(t.block) == "" {
		return nil
	}
	return []string{t.block}
}

// String returns the block, or the list joined by newlines.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	if t.list {
		return strings.Join(t.items, "\n")
	}
	return t.block
}

// TextFrom converts an untyped JSON value into a Text. Strings become
// blocks; arrays become lists. Scalar list elements are stringified and
// nested objects or arrays are dropped. Any other value yields nil.
func TextFrom(v any) *Text {
	switch val := v.(type) {
	case string:
		return Block(val)
	case []string:
		return List(val...)
	case []any:
		items := make([]string, 0, len(val))
		for _, e := range val {
			if s, ok := scalarString(e); ok {
				items = append(items, s)
			}
		}
		return List(items...)
	default:
		return nil
	}
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// MarshalJSON emits a JSON string for a block and a JSON array for a list.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.list {
		items := t.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(t.block)
}

// UnmarshalJSON accepts a JSON string or a JSON array.
func (t *Text) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed := TextFrom(raw)
	if parsed == nil {
		return fmt.Errorf("text: expected string or array, got %s", strings.TrimSpace(string(data)))
	}
	*t = *parsed
	return nil
}

// MarshalYAML emits a scalar for a block and a sequence for a list.
func (t Text) MarshalYAML() (any, error) {
	if t.list {
		items := t.items
		if items == nil {
			items = []string{}
		}
		return items, nil
	}
	return t.block, nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Text{block: node.Value}
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("text: decoding sequence: %w", err)
		}
		*t = *List(items...)
	default:
		return fmt.Errorf("text: expected scalar or sequence at line %d", node.Line)
	}
	return nil
}
