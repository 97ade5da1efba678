// Package recordsource defines the read interface that compiled filters are
// executed against.
//
// A Source is backed by a storage engine. This repository ships three
// implementations: the mongo package (the production document store), the
// postgres package (a relational mirror of the same collections) and the
// memstore package (an in-process store for development and tests).
//
// Implementations must:
//   - treat a predicate as a conjunction of its entries
//   - support both Equality and Membership conditions on the same field
//   - sort descending by FindOptions.Sort before applying FindOptions.Limit
//   - report connectivity failures as ErrStorageUnavailable and missing
//     documents as ErrNotFound, wrapped in *OperationError
//   - never retry; retry policy belongs to the caller
//
// Example:
//
//	q, err := filters.AssembleQuery(spec, schema)
//	if err != nil {
//	    return nil, err
//	}
//	docs, err := source.FindMany(ctx, "cleanedResale", q.Predicate, recordsource.FindOptions{
//	    Sort:  "date",
//	    Limit: q.Limit,
//	})
//	if recordsource.IsStorageUnavailable(err) {
//	    // retryable
//	}
package recordsource
