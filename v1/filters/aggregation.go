package filters

import (
	"fmt"
)

// Grouping describes the single group stage of an aggregation.
type Grouping struct {
	// Key is the field whose distinct values define the buckets.
	Key string
	// Field is the aggregated field. Empty with AccFirst keeps whole documents.
	Field string
	Func  Accumulator
	// As names the aggregate in the output. Defaults to Field.
	As string
}

// AggregationOptions adds optional stages around the group.
type AggregationOptions struct {
	// PreLimit caps the documents entering the pipeline. It is always the
	// first stage.
	PreLimit *int
	// PreSort orders documents between the match stages and the group.
	PreSort []SortKey
	// PostSort orders the group output.
	PostSort []SortKey
	// Promote replaces each group output with the document stored under As.
	Promote bool
}

// AssembleAggregation compiles spec against schema and expands the predicate
// into one MatchStage per target field, followed by exactly one GroupStage.
// A spec carrying a read limit is rejected: read limits are never combined
// with grouping. Group fields unknown to the schema are rejected before any
// I/O.
func AssembleAggregation(spec FilterSpec, schema Schema, grouping Grouping, opts AggregationOptions) (Pipeline, error) {
	if spec.Limit != nil {
		return nil, fieldError("limit", fmt.Errorf("%w: a read limit cannot be combined with grouping", ErrInvalidPipeline))
	}

	predicate, err := compilePredicate(spec, schema)
	if err != nil {
		return nil, err
	}

	if err := validateGrouping(grouping, schema, opts); err != nil {
		return nil, err
	}

	return NewPipeline(predicate, grouping, opts)
}

// NewPipeline builds the stage list for predicate and grouping:
//
//	[limit] match... [sort] group [replaceRoot] [sort]
//
// With an empty predicate and no options the pipeline is the group stage alone.
func NewPipeline(predicate CompiledPredicate, grouping Grouping, opts AggregationOptions) (Pipeline, error) {
	as := grouping.As
	if as == "" {
		as = grouping.Field
	}

	stages := make(Pipeline, 0, predicate.Len()+5)
	if opts.PreLimit != nil {
		stages = append(stages, LimitStage{N: *opts.PreLimit})
	}
	for _, e := range predicate.entries {
		stages = append(stages, MatchStage{Field: e.Field, Condition: e.Condition})
	}
	if len(opts.PreSort) > 0 {
		stages = append(stages, SortStage{Keys: cloneKeys(opts.PreSort)})
	}
	stages = append(stages, GroupStage{
		Key:         grouping.Key,
		Accumulator: grouping.Func,
		Field:       grouping.Field,
		As:          as,
	})
	if opts.Promote {
		stages = append(stages, ReplaceRootStage{Field: as})
	}
	if len(opts.PostSort) > 0 {
		stages = append(stages, SortStage{Keys: cloneKeys(opts.PostSort)})
	}

	if err := stages.Validate(); err != nil {
		return nil, err
	}
	return stages, nil
}

func validateGrouping(g Grouping, schema Schema, opts AggregationOptions) error {
	if !schema.HasField(g.Key) {
		return fmt.Errorf("%w: group key %q is not a field of %q", ErrInvalidPipeline, g.Key, schema.Name)
	}
	if g.Field != "" && !schema.HasField(g.Field) {
		return fmt.Errorf("%w: group field %q is not a field of %q", ErrInvalidPipeline, g.Field, schema.Name)
	}
	for _, k := range opts.PreSort {
		if !schema.HasField(k.Field) {
			return fmt.Errorf("%w: sort field %q is not a field of %q", ErrInvalidPipeline, k.Field, schema.Name)
		}
	}
	as := g.As
	if as == "" {
		as = g.Field
	}
	for _, k := range opts.PostSort {
		if k.Field != GroupKeyField && k.Field != as && !opts.Promote {
			return fmt.Errorf("%w: sort field %q is not produced by the group", ErrInvalidPipeline, k.Field)
		}
	}
	return nil
}

func cloneKeys(keys []SortKey) []SortKey {
	out := make([]SortKey, len(keys))
	copy(out, keys)
	return out
}
