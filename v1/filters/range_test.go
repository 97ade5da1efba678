package filters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRange_BothAbsent(t *testing.T) {
	cmp, err := CompileRange(RangeBounds{}, false)
	require.NoError(t, err)
	assert.Nil(t, cmp)

	cmp, err = CompileRange(RangeBounds{}, true)
	require.NoError(t, err)
	assert.Nil(t, cmp)
}

func TestCompileRange_Numeric(t *testing.T) {
	tests := []struct {
		name   string
		bounds RangeBounds
		want   Comparison
	}{
		{"both ints", RangeBounds{Gte: 400, Lte: 600}, Comparison{Gte: 400.0, Lte: 600.0}},
		{"point range", RangeBounds{Gte: 1.5, Lte: 1.5}, Comparison{Gte: 1.5, Lte: 1.5}},
		{"only lower", RangeBounds{Gte: int64(1990)}, Comparison{Gte: 1990.0}},
		{"only upper", RangeBounds{Lte: "103.9"}, Comparison{Lte: 103.9}},
		{"json number", RangeBounds{Gte: json.Number("1.25")}, Comparison{Gte: 1.25}},
		{"inverted kept", RangeBounds{Gte: 10, Lte: 1}, Comparison{Gte: 10.0, Lte: 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, err := CompileRange(tt.bounds, false)
			require.NoError(t, err)
			require.NotNil(t, cmp)
			assert.Equal(t, tt.want, *cmp)
		})
	}
}

func TestCompileRange_AbsentBoundHasNoKey(t *testing.T) {
	cmp, err := CompileRange(RangeBounds{Gte: 400}, false)
	require.NoError(t, err)

	raw, err := json.Marshal(cmp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ge":400}`, string(raw))
}

func TestCompileRange_Temporal(t *testing.T) {
	jan := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{"month", "2020-01", jan},
		{"day", "2020-01-01", jan},
		{"local timestamp", "2020-01-01T00:00:00", jan},
		{"rfc3339 offset", "2020-01-01T08:00:00+08:00", jan},
		{"unix millis", jan.UnixMilli(), jan},
		{"time value", jan.In(time.FixedZone("SGT", 8*3600)), jan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, err := CompileRange(RangeBounds{Gte: tt.value, Lte: tt.value}, true)
			require.NoError(t, err)
			require.NotNil(t, cmp)

			gte, ok := cmp.Gte.(time.Time)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(gte))
			assert.Equal(t, time.UTC, gte.Location())
			assert.Equal(t, cmp.Gte, cmp.Lte)
		})
	}
}

func TestCompileRange_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		bounds   RangeBounds
		temporal bool
	}{
		{"word as number", RangeBounds{Gte: "cheap"}, false},
		{"bool as number", RangeBounds{Lte: true}, false},
		{"slice as number", RangeBounds{Gte: []int{1}}, false},
		{"bad date", RangeBounds{Gte: "yesterday"}, true},
		{"bad upper date", RangeBounds{Gte: "2020-01", Lte: "2020-13"}, true},
		{"map as date", RangeBounds{Lte: map[string]any{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, err := CompileRange(tt.bounds, tt.temporal)
			assert.Nil(t, cmp)
			assert.ErrorIs(t, err, ErrInvalidFilterValue)
		})
	}
}

func TestCompileRanges(t *testing.T) {
	fields := map[string]RangeField{
		"psfRange":  {Target: "Psf"},
		"dateRange": {Target: "date", Temporal: true},
		"yearRange": {Target: "year"},
	}

	pred, err := CompileRanges(map[string]RangeBounds{
		"psfRange":  {Gte: 400, Lte: 600},
		"yearRange": {},
		"dateRange": {Gte: "2021-06"},
	}, fields)
	require.NoError(t, err)

	assert.Equal(t, 2, pred.Len())
	assert.Equal(t, []string{"date", "Psf"}, pred.Fields())

	cond, ok := pred.Get("Psf")
	require.True(t, ok)
	assert.Equal(t, Comparison{Gte: 400.0, Lte: 600.0}, cond)

	_, ok = pred.Get("year")
	assert.False(t, ok)
}

func TestCompileRanges_Errors(t *testing.T) {
	fields := map[string]RangeField{"psfRange": {Target: "Psf"}}

	_, err := CompileRanges(map[string]RangeBounds{"priceRange": {Gte: 1}}, fields)
	assert.ErrorIs(t, err, ErrUnknownFilterField)
	field, ok := FieldOf(err)
	require.True(t, ok)
	assert.Equal(t, "priceRange", field)

	_, err = CompileRanges(map[string]RangeBounds{"psfRange": {Gte: "x"}}, fields)
	assert.ErrorIs(t, err, ErrInvalidFilterValue)
	field, _ = FieldOf(err)
	assert.Equal(t, "psfRange", field)
}
