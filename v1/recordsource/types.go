package recordsource

// IDField is the identifier field of every document.
const IDField = "_id"

// Document is an opaque stored document. Its schema is owned by the
// collection, not by this package.
type Document = map[string]any

// ResultSet is an ordered sequence of documents returned verbatim.
type ResultSet []Document

// FindOptions controls ordering and truncation of FindMany.
type FindOptions struct {
	// Sort orders results by this field, descending. Empty leaves storage order.
	Sort string

	// Limit truncates the sorted results. Nil returns everything.
	Limit *int
}

// Operation names reported in errors and observations.
const (
	OpFindMany       = "find_many"
	OpAggregate      = "aggregate"
	OpDistinctValues = "distinct_values"
	OpFindOne        = "find_one"
)
