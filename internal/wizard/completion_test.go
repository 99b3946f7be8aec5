package wizard

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testChecklist = Checklist{
	{Label: "Name", Key: "name"},
	{Label: "Tags", Key: "tags"},
	{Label: "Layouts", Key: "layouts"},
	{Label: "Guests", Key: "guests"},
}

func TestPopulated(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"blank string", "   ", false},
		{"string", " Loft ", true},
		{"empty array", []any{}, false},
		{"array", []any{"x"}, true},
		{"empty string slice", []string{}, false},
		{"record all empty", map[string]any{"standing": "", "dining": ""}, false},
		{"record zero number", map[string]any{"standing": float64(0)}, false},
		{"record one value", map[string]any{"standing": "", "dining": "40"}, true},
		{"record false", map[string]any{"wifi": false}, false},
		{"record true", map[string]any{"wifi": true}, true},
		{"number", float64(0), true},
		{"bool", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Populated(tc.value))
		})
	}
}

func TestScore(t *testing.T) {
	doc := Document{
		"name":    "Loft",
		"tags":    []any{},
		"layouts": map[string]any{"standing": "50"},
	}
	r := Score(doc, testChecklist)

	assert.Equal(t, 2, r.Completed)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 50, r.Percent)
	assert.Equal(t, []ItemStatus{
		{Label: "Name", Key: "name", Complete: true},
		{Label: "Tags", Key: "tags", Complete: false},
		{Label: "Layouts", Key: "layouts", Complete: true},
		{Label: "Guests", Key: "guests", Complete: false},
	}, r.Items)
}

func TestScore_Rounding(t *testing.T) {
	list := Checklist{{Key: "a"}, {Key: "b"}, {Key: "c"}}
	assert.Equal(t, 33, Score(Document{"a": "x"}, list).Percent)
	assert.Equal(t, 67, Score(Document{"a": "x", "b": "y"}, list).Percent)
}

func TestScore_HundredOnlyWhenComplete(t *testing.T) {
	list := make(Checklist, 201)
	doc := Document{}
	for i := range list {
		key := string(rune('a'+i%26)) + string(rune('A'+i/26))
		list[i] = ChecklistItem{Key: key}
		if i > 0 {
			doc[key] = "x"
		}
	}
	assert.Equal(t, 99, Score(doc, list).Percent)

	doc[list[0].Key] = "x"
	assert.Equal(t, 100, Score(doc, list).Percent)
}

func TestScore_EmptyChecklist(t *testing.T) {
	assert.Equal(t, 100, Score(Document{}, nil).Percent)
}

func TestScore_MonotonicInAnyOrder(t *testing.T) {
	values := map[string]any{
		"name":    "Loft",
		"tags":    []any{"bar"},
		"layouts": map[string]any{"dining": "20"},
		"guests":  "80",
	}
	keys := []string{"name", "tags", "layouts", "guests"}
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		doc := Document{}
		last := Score(doc, testChecklist).Percent
		for i, k := range keys {
			doc[k] = values[k]
			p := Score(doc, testChecklist).Percent
			assert.GreaterOrEqual(t, p, last)
			if i < len(keys)-1 {
				assert.Less(t, p, 100)
			}
			last = p
		}
		assert.Equal(t, 100, last)
	}
}
