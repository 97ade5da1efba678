package filters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_DisjointKeepsEveryEntry(t *testing.T) {
	a, err := NewPredicate(
		Entry{Field: "Psf", Condition: Comparison{Gte: 400.0}},
		Entry{Field: "lat", Condition: Comparison{Lte: 1.4}},
	)
	require.NoError(t, err)
	b, err := NewPredicate(Entry{Field: "town", Condition: Equality{Value: "BISHAN"}})
	require.NoError(t, err)

	merged, err := Merge(a, CompiledPredicate{}, b)
	require.NoError(t, err)

	assert.Equal(t, a.Len()+b.Len(), merged.Len())
	assert.Equal(t, []string{"Psf", "lat", "town"}, merged.Fields())
}

func TestMerge_OverlapIsRejected(t *testing.T) {
	a, _ := NewPredicate(Entry{Field: "town", Condition: Equality{Value: "BISHAN"}})
	b, _ := NewPredicate(Entry{Field: "town", Condition: Membership{Values: []string{"A", "B"}}})

	_, err := Merge(a, b)
	assert.ErrorIs(t, err, ErrDuplicateTarget)
}

func TestNewPredicate_Rejects(t *testing.T) {
	_, err := NewPredicate(
		Entry{Field: "town", Condition: Equality{Value: "A"}},
		Entry{Field: "town", Condition: Equality{Value: "B"}},
	)
	assert.ErrorIs(t, err, ErrDuplicateTarget)

	_, err = NewPredicate(Entry{Field: "town"})
	assert.ErrorIs(t, err, ErrInvalidFilterValue)
}

func TestPredicate_Immutable(t *testing.T) {
	base, _ := NewPredicate(Entry{Field: "a", Condition: Equality{Value: 1}})

	entries := base.Entries()
	entries[0].Field = "changed"

	assert.Equal(t, []string{"a"}, base.Fields())
}

func TestPredicate_MarshalJSON(t *testing.T) {
	pred, err := NewPredicate(
		Entry{Field: "town", Condition: Equality{Value: "BISHAN"}},
		Entry{Field: "flat_type", Condition: Membership{Values: []string{"3 ROOM", "4 ROOM"}}},
		Entry{Field: "Psf", Condition: Comparison{Gte: 400.0, Lte: 600.0}},
	)
	require.NoError(t, err)

	raw, err := json.Marshal(pred)
	require.NoError(t, err)
	assert.Equal(t,
		`{"town":"BISHAN","flat_type":{"in":["3 ROOM","4 ROOM"]},"Psf":{"ge":400,"le":600}}`,
		string(raw),
	)

	raw, err = json.Marshal(CompiledPredicate{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(raw))
}
