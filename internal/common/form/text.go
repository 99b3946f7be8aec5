package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Lenient form values
// ============================================================

// Text is a form value. Browsers send most inputs as strings but number
// inputs sometimes arrive as JSON numbers, so both are accepted.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case float64:
		*t = Text(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(val))
	default:
		return fmt.Errorf("expected text, got %s", string(b))
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Trim returns the value without surrounding whitespace.
func (t Text) Trim() string { return strings.TrimSpace(string(t)) }

func (t Text) Empty() bool { return t.Trim() == "" }

// List is a multi-select value. A bare string is read as a one-item list.
type List []Text

func (l *List) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []Text
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var single Text
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}
	if single.Empty() {
		*l = nil
		return nil
	}
	*l = List{single}
	return nil
}

// Values returns the trimmed, non-blank items in order.
func (l List) Values() []string {
	out := make([]string, 0, len(l))
	for _, item := range l {
		if v := item.Trim(); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Lines is free text entered one item per line; a JSON array is also
// accepted.
type Lines []Text

func (l *Lines) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []Text
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var text Text
	if err := json.Unmarshal(b, &text); err != nil {
		return err
	}
	var out Lines
	for _, line := range strings.Split(strings.ReplaceAll(string(text), "\r\n", "\n"), "\n") {
		out = append(out, Text(line))
	}
	*l = out
	return nil
}

func (l Lines) Values() []string {
	return List(l).Values()
}
