package wizard

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Document
// ============================================================

// Document is the single record threaded through a wizard instance. Values
// are whatever JSON decodes to: strings, float64, bool, []any, map[string]any.
type Document map[string]any

// Merge copies every key of partial into d. Nested values are replaced, not
// merged.
func (d Document) Merge(partial Document) {
	for k, v := range partial {
		d[k] = v
	}
}

// Clone returns an independent deep copy of d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// WithDefaults returns a copy of d in which every key missing from d is taken
// from defaults.
func (d Document) WithDefaults(defaults Document) Document {
	out := defaults.Clone()
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// DecodeDocument parses a persisted draft. Anything that is not a JSON object
// is an error.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode document: not an object")
	}
	return doc, nil
}

// Decode unmarshals the document into a typed view.
func (d Document) Decode(target any) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case Document:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
