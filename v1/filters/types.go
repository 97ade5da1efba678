package filters

import (
	"encoding/json"
)

// ── Input ────────────────────────────────────────────────────────────────────

// RangeBounds holds the optional inclusive bounds of one logical range filter.
// A nil bound is absent and produces no comparison.
type RangeBounds struct {
	Gte any `json:"gte,omitempty"`
	Lte any `json:"lte,omitempty"`
}

// IsZero reports whether both bounds are absent.
func (b RangeBounds) IsZero() bool {
	return b.Gte == nil && b.Lte == nil
}

// FilterSpec is the caller-facing filter input. It is read, never written, by
// the compilers in this package.
//
// Example:
//
//	limit := 300
//	spec := filters.FilterSpec{
//	    Ranges:     map[string]filters.RangeBounds{"psfRange": {Gte: 400, Lte: 600}},
//	    Categories: map[string][]string{"towns": {"BISHAN"}},
//	    Limit:      &limit,
//	}
type FilterSpec struct {
	// Ranges maps a logical range name to its bounds.
	Ranges map[string]RangeBounds `json:"ranges,omitempty"`

	// Categories maps a logical categorical name to its candidate values.
	Categories map[string][]string `json:"categories,omitempty"`

	// Fields are equality filters on target fields, subject to the schema's
	// pass-through rules.
	Fields map[string]any `json:"fields,omitempty"`

	// Limit caps the number of returned documents. It is not part of the
	// predicate.
	Limit *int `json:"limit,omitempty"`
}

// IsEmpty reports whether the spec carries no filter at all.
func (s FilterSpec) IsEmpty() bool {
	return len(s.Ranges) == 0 && len(s.Categories) == 0 && len(s.Fields) == 0 && s.Limit == nil
}

// ── Conditions ───────────────────────────────────────────────────────────────

// Condition is the interface all compiled conditions implement. Each
// recordsource adapter converts them to its native filter format.
type Condition interface {
	// IsCondition is a marker method to ensure type safety
	IsCondition()
}

// Comparison is an inclusive range on one field. Bounds are float64 for
// numeric ranges and time.Time for temporal ones; a nil bound is absent.
type Comparison struct {
	Gte any
	Lte any
}

func (Comparison) IsCondition() {}

// MarshalJSON renders the comparison as {"ge": x, "le": y}, omitting absent bounds.
func (c Comparison) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Ge any `json:"ge,omitempty"`
		Le any `json:"le,omitempty"`
	}{Ge: c.Gte, Le: c.Lte})
}

// Equality matches documents whose field equals Value.
type Equality struct {
	Value any
}

func (Equality) IsCondition() {}

// MarshalJSON renders the bare value.
func (e Equality) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Value)
}

// Membership matches documents whose field equals one of Values.
type Membership struct {
	Values []string
}

func (Membership) IsCondition() {}

// MarshalJSON renders the membership as {"in": [...]}.
func (m Membership) MarshalJSON() ([]byte, error) {
	values := m.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(struct {
		In []string `json:"in"`
	}{In: values})
}
