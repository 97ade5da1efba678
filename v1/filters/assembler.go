package filters

import (
	"encoding/json"
	"fmt"
	"time"
)

// Query is the result of AssembleQuery. A non-nil Limit asks the caller to
// sort by the schema's RecencyField, newest first, before truncating.
type Query struct {
	Predicate CompiledPredicate
	Limit     *int
}

// AssembleQuery compiles spec against schema into a predicate for a filtered
// read. Ranges, categorical filters and pass-through fields are compiled in
// that order and merged; spec is not modified.
func AssembleQuery(spec FilterSpec, schema Schema) (Query, error) {
	predicate, err := compilePredicate(spec, schema)
	if err != nil {
		return Query{}, err
	}

	limit, err := compileLimit(spec.Limit)
	if err != nil {
		return Query{}, err
	}

	return Query{Predicate: predicate, Limit: limit}, nil
}

func compilePredicate(spec FilterSpec, schema Schema) (CompiledPredicate, error) {
	if err := schema.Validate(); err != nil {
		return CompiledPredicate{}, err
	}

	ranges, err := CompileRanges(spec.Ranges, schema.Ranges)
	if err != nil {
		return CompiledPredicate{}, err
	}

	sets, err := CompileSets(spec.Categories, schema.Categories)
	if err != nil {
		return CompiledPredicate{}, err
	}

	fields, err := compilePassThrough(spec.Fields, schema)
	if err != nil {
		return CompiledPredicate{}, err
	}

	return Merge(ranges, sets, fields)
}

func compilePassThrough(fields map[string]any, schema Schema) (CompiledPredicate, error) {
	var out CompiledPredicate
	for _, name := range sortedKeys(fields) {
		value := fields[name]
		if value == nil {
			continue
		}
		if !schema.allowsPassThrough(name) {
			return CompiledPredicate{}, fieldError(name, fmt.Errorf("%w: not an approved pass-through field", ErrUnknownFilterField))
		}
		if !isScalar(value) {
			return CompiledPredicate{}, fieldError(name, fmt.Errorf("%w: %T is not a scalar", ErrInvalidFilterValue, value))
		}
		if n, ok := value.(json.Number); ok {
			f, err := ToFloat(n)
			if err != nil {
				return CompiledPredicate{}, fieldError(name, err)
			}
			value = f
		}

		var err error
		out, err = out.with(name, Equality{Value: value})
		if err != nil {
			return CompiledPredicate{}, fieldError(name, err)
		}
	}
	return out, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, time.Time,
		float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		_, err := ToFloat(v)
		return err == nil
	}
}

func compileLimit(limit *int) (*int, error) {
	if limit == nil {
		return nil, nil
	}
	if *limit <= 0 {
		return nil, fieldError("limit", fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidFilterValue, *limit))
	}
	n := *limit
	return &n, nil
}
