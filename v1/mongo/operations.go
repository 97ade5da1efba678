package mongo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/observability"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

const component = "mongo"

// Adapter executes compiled filters against one MongoDB database.
type Adapter struct {
	db       *mongo.Database
	observer observability.Observer
}

var _ recordsource.Source = (*Adapter)(nil)

// NewAdapter returns an adapter over db.
func NewAdapter(db *mongo.Database) *Adapter {
	return &Adapter{db: db}
}

// WithObserver attaches an observer that receives one report per operation.
func (a *Adapter) WithObserver(observer observability.Observer) *Adapter {
	a.observer = observer
	return a
}

// FindMany runs a find with the predicate as its filter. A sort field orders
// results descending before the limit is applied.
func (a *Adapter) FindMany(ctx context.Context, collection string, predicate filters.CompiledPredicate, opts recordsource.FindOptions) (recordsource.ResultSet, error) {
	start := time.Now()

	filter, err := convertPredicate(predicate)
	if err != nil {
		return nil, a.finish(recordsource.OpFindMany, collection, "", start, 0, err)
	}

	findOpts := options.Find()
	if opts.Sort != "" {
		findOpts.SetSort(bson.D{{Key: opts.Sort, Value: -1}})
	}
	if opts.Limit != nil {
		findOpts.SetLimit(int64(*opts.Limit))
	}

	cursor, err := a.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, a.finish(recordsource.OpFindMany, collection, "", start, 0, err)
	}

	docs, err := decodeAll(ctx, cursor)
	return docs, a.finish(recordsource.OpFindMany, collection, "", start, len(docs), err)
}

// Aggregate runs the pipeline.
func (a *Adapter) Aggregate(ctx context.Context, collection string, pipeline filters.Pipeline) (recordsource.ResultSet, error) {
	start := time.Now()

	if err := pipeline.Validate(); err != nil {
		return nil, a.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}
	stages, err := convertPipeline(pipeline)
	if err != nil {
		return nil, a.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}

	cursor, err := a.db.Collection(collection).Aggregate(ctx, stages)
	if err != nil {
		return nil, a.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}

	docs, err := decodeAll(ctx, cursor)
	return docs, a.finish(recordsource.OpAggregate, collection, "", start, len(docs), err)
}

// DistinctValues returns the sorted distinct values of field. Non-string
// values are rendered with fmt.
func (a *Adapter) DistinctValues(ctx context.Context, collection string, field string) ([]string, error) {
	start := time.Now()

	raw, err := a.db.Collection(collection).Distinct(ctx, field, bson.D{})
	if err != nil {
		return nil, a.finish(recordsource.OpDistinctValues, collection, field, start, 0, err)
	}

	values := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(toValue(v))
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}
	sort.Strings(values)
	return values, a.finish(recordsource.OpDistinctValues, collection, field, start, len(values), nil)
}

// FindOne returns the document with the given id. Hex ids are matched as
// ObjectIDs.
func (a *Adapter) FindOne(ctx context.Context, collection string, id string) (recordsource.Document, error) {
	start := time.Now()

	var raw bson.M
	err := a.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&raw)
	if err != nil {
		return nil, a.finish(recordsource.OpFindOne, collection, "", start, 0, err)
	}
	return toDocument(raw), a.finish(recordsource.OpFindOne, collection, "", start, 1, nil)
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) (recordsource.ResultSet, error) {
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	docs := make(recordsource.ResultSet, len(raw))
	for i, m := range raw {
		docs[i] = toDocument(m)
	}
	return docs, nil
}

// finish reports the operation and returns the translated, wrapped error.
func (a *Adapter) finish(op, collection, field string, start time.Time, size int, err error) error {
	err = TranslateError(err)
	if a.observer != nil {
		a.observer.ObserveOperation(observability.OperationContext{
			Component:   component,
			Operation:   op,
			Resource:    collection,
			SubResource: field,
			Duration:    time.Since(start),
			Error:       err,
			Size:        int64(size),
		})
	}
	return recordsource.Wrap(op, collection, err)
}
