package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddColumnRejectsMismatchAndDuplicates(t *testing.T) {
	tb := New(2)
	require.NoError(t, tb.AddColumn("CITY", []any{"Pune", "Delhi"}))
	require.Error(t, tb.AddColumn("CITY", []any{"a", "b"}))
	require.Error(t, tb.AddColumn("STATE", []any{"MH"}))

	assert.Equal(t, []string{"CITY"}, tb.Names())
	assert.True(t, tb.Has("CITY"))
	assert.False(t, tb.Has("city"))

	c, ok := tb.Column("CITY")
	require.True(t, ok)
	assert.Equal(t, "Delhi", c.Values[1])
	assert.Equal(t, map[string]any{"CITY": "Pune"}, tb.Row(0))
}

func TestColumnKind(t *testing.T) {
	cases := []struct {
		name   string
		values []any
		want   Kind
	}{
		{"numbers", []any{1.0, nil, 3.5}, KindNumeric},
		{"strings", []any{"a", nil}, KindCategorical},
		{"mixed string and number", []any{"a", 2.0}, KindCategorical},
		{"bools", []any{true, false}, KindBoolean},
		{"bools with gaps", []any{true, nil, false}, KindCategorical},
		{"bools and numbers", []any{true, 1.0}, KindCategorical},
		{"all missing", []any{nil, nil}, KindEmpty},
		{"no rows", []any{}, KindEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Column{Name: tc.name, Values: tc.values}
			assert.Equal(t, tc.want, c.Kind())
		})
	}
}

func TestFormatValueAndMissing(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "", FormatValue(math.NaN()))
	assert.Equal(t, "5", FormatValue(5.0))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "7", FormatValue(7))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "Pune", FormatValue("Pune"))

	c := &Column{Values: []any{nil, 1.0, math.NaN(), "x"}}
	assert.Equal(t, 2, c.Missing())
}
