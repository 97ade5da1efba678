package recordsource

import (
	"context"

	"github.com/hdbmap/geoquery/v1/filters"
)

//go:generate mockgen -source=interface.go -destination=mock_source.go -package=recordsource

// Source is the storage read interface targeted by the filter assemblers.
type Source interface {
	// FindMany returns the documents matching every entry of predicate.
	FindMany(ctx context.Context, collection string, predicate filters.CompiledPredicate, opts FindOptions) (ResultSet, error)

	// Aggregate runs pipeline and returns one document per group.
	Aggregate(ctx context.Context, collection string, pipeline filters.Pipeline) (ResultSet, error)

	// DistinctValues returns the unique values of field across the whole
	// collection, in a stable order.
	DistinctValues(ctx context.Context, collection string, field string) ([]string, error)

	// FindOne returns the document with the given id or ErrNotFound.
	FindOne(ctx context.Context, collection string, id string) (Document, error)
}
