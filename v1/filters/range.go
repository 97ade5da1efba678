package filters

import (
	"fmt"
	"sort"
)

// CompileRange compiles one pair of bounds. It returns nil, nil when both
// bounds are absent. Present bounds are coerced to time.Time when temporal is
// set and to float64 otherwise; gte == lte is a valid point range.
func CompileRange(bounds RangeBounds, temporal bool) (*Comparison, error) {
	if bounds.IsZero() {
		return nil, nil
	}

	coerce := func(v any) (any, error) { return ToFloat(v) }
	if temporal {
		coerce = func(v any) (any, error) { return ToTime(v) }
	}

	var cmp Comparison
	if bounds.Gte != nil {
		v, err := coerce(bounds.Gte)
		if err != nil {
			return nil, fmt.Errorf("gte: %w", err)
		}
		cmp.Gte = v
	}
	if bounds.Lte != nil {
		v, err := coerce(bounds.Lte)
		if err != nil {
			return nil, fmt.Errorf("lte: %w", err)
		}
		cmp.Lte = v
	}
	return &cmp, nil
}

// CompileRanges compiles every logical range through fields. Names missing
// from fields are ErrUnknownFilterField. Ranges with both bounds absent
// contribute nothing.
func CompileRanges(ranges map[string]RangeBounds, fields map[string]RangeField) (CompiledPredicate, error) {
	var out CompiledPredicate
	for _, name := range sortedKeys(ranges) {
		field, ok := fields[name]
		if !ok {
			return CompiledPredicate{}, fieldError(name, fmt.Errorf("%w: not a range filter", ErrUnknownFilterField))
		}

		cmp, err := CompileRange(ranges[name], field.Temporal)
		if err != nil {
			return CompiledPredicate{}, fieldError(name, err)
		}
		if cmp == nil {
			continue
		}

		out, err = out.with(field.Target, *cmp)
		if err != nil {
			return CompiledPredicate{}, fieldError(name, err)
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
