// Package filters compiles caller-supplied filter specifications into
// storage-neutral predicates and aggregation pipelines.
//
// A FilterSpec carries named range filters, named categorical filters,
// pass-through equality fields and an optional result limit. A Schema maps
// each logical filter name onto exactly one target document field. The
// package never performs I/O: everything here is synchronous, request scoped
// and free of shared state, so compiled values can be handed to any
// recordsource.Source implementation.
//
// # Compilers
//
// CompileRange turns {gte, lte} bounds into a Comparison that carries only the
// bounds that were supplied. Temporal ranges coerce both bounds into UTC
// time.Time values; numeric ranges coerce into float64.
//
//	cmp, err := filters.CompileRange(filters.RangeBounds{Gte: 400, Lte: 600}, false)
//	// cmp == &filters.Comparison{Gte: 400.0, Lte: 600.0}
//
// CompileSet collapses a single candidate into an Equality and keeps longer
// lists as a Membership in input order:
//
//	filters.CompileSet([]string{"BISHAN"})             // Equality{Value: "BISHAN"}
//	filters.CompileSet([]string{"BISHAN", "TAMPINES"}) // Membership{Values: [...]}
//	filters.CompileSet(nil)                            // nil
//
// # Assemblers
//
// AssembleQuery produces a Query for simple filtered reads:
//
//	q, err := filters.AssembleQuery(spec, schema)
//	if err != nil {
//	    return err // compile errors are raised before any I/O
//	}
//	docs, err := source.FindMany(ctx, "cleanedResale", q.Predicate, recordsource.FindOptions{
//	    Sort:  schema.RecencyField,
//	    Limit: q.Limit,
//	})
//
// AssembleAggregation expands the same predicate into one MatchStage per
// target field, followed by exactly one GroupStage:
//
//	pipeline, err := filters.AssembleAggregation(spec, schema,
//	    filters.Grouping{Key: "date", Field: "Psf", Func: filters.AccAvg, As: "Psf"},
//	    filters.AggregationOptions{},
//	)
//
// # Errors
//
// Every failure wraps one of ErrInvalidFilterValue, ErrUnknownFilterField,
// ErrInvalidPipeline or ErrDuplicateTarget. Failures tied to one logical
// filter are reported as *FieldError so transports can point at the
// offending field.
package filters
