// Package memstore is an in-process recordsource.Source.
//
// It evaluates compiled predicates and pipelines directly over documents held
// in memory, with the same semantics as the mongo adapter: conjunction of
// predicate entries, inclusive comparisons across numbers and dates,
// descending sort before limit, and one output document per group. It backs
// the "memory" backend for local development and serves as a fake in tests.
//
//	store := memstore.New()
//	store.Insert("cleanedResale", recordsource.Document{"town": "BISHAN", "Psf": 512.0})
//	docs, err := store.FindMany(ctx, "cleanedResale", predicate, recordsource.FindOptions{})
package memstore
