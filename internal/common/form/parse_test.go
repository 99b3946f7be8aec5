package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		want Parsed[int]
	}{
		{"50", Parsed[int]{Value: 50, OK: true}},
		{" 7 ", Parsed[int]{Value: 7, OK: true}},
		{"0", Parsed[int]{Value: 0, OK: true}},
		{"1,200", Parsed[int]{Value: 1200, OK: true}},
		{"12.9", Parsed[int]{Value: 12, OK: true}},
		{"", Parsed[int]{}},
		{"fifty", Parsed[int]{}},
		{"NaN", Parsed[int]{}},
		{"1e20", Parsed[int]{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseInt(tc.in), "input %q", tc.in)
	}
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, Parsed[float64]{Value: 1500.5, OK: true}, ParseFloat("1,500.5"))
	assert.Equal(t, Parsed[float64]{}, ParseFloat("Inf"))
	assert.Equal(t, Parsed[float64]{}, ParseFloat("  "))
}

func TestParsed_Or(t *testing.T) {
	assert.Equal(t, 0, ParseInt("garbage").Or(0))
	assert.Equal(t, -1, ParseInt("").Or(-1))
	assert.Equal(t, 0, ParseInt("0").Or(-1), "a real zero is kept")
}
