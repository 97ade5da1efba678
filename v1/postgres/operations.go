package postgres

import (
	"context"
	"time"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/observability"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

const component = "postgres"

// Adapter executes compiled filters against the tables of one database.
type Adapter struct {
	pg       *Postgres
	observer observability.Observer
}

var _ recordsource.Source = (*Adapter)(nil)

// NewAdapter returns an adapter over pg. It always uses pg's current client.
func NewAdapter(pg *Postgres) *Adapter {
	return &Adapter{pg: pg}
}

// WithObserver attaches an observer that receives one report per operation.
func (a *Adapter) WithObserver(observer observability.Observer) *Adapter {
	a.observer = observer
	return a
}

func (a *Adapter) builder(ctx context.Context, table string) *QueryBuilder {
	return newQueryBuilder(a.pg.DB().WithContext(ctx), table)
}

// FindMany selects the rows matching predicate.
func (a *Adapter) FindMany(ctx context.Context, collection string, predicate filters.CompiledPredicate, opts recordsource.FindOptions) (recordsource.ResultSet, error) {
	start := time.Now()

	q, err := a.builder(ctx, collection).Find(predicate, opts)
	if err != nil {
		return nil, a.finish(recordsource.OpFindMany, collection, "", start, 0, err)
	}

	var rows []map[string]interface{}
	if err := q.Find(&rows).Error; err != nil {
		return nil, a.finish(recordsource.OpFindMany, collection, "", start, 0, err)
	}

	docs := toResultSet(rows)
	return docs, a.finish(recordsource.OpFindMany, collection, "", start, len(docs), nil)
}

// Aggregate runs pipeline as a single SELECT.
func (a *Adapter) Aggregate(ctx context.Context, collection string, pipeline filters.Pipeline) (recordsource.ResultSet, error) {
	start := time.Now()

	if err := pipeline.Validate(); err != nil {
		return nil, a.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}
	q, err := a.builder(ctx, collection).Aggregate(pipeline)
	if err != nil {
		return nil, a.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}

	var rows []map[string]interface{}
	if err := q.db.Find(&rows).Error; err != nil {
		return nil, a.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}

	docs := toResultSet(rows)
	if q.wrapAs != "" {
		for i, doc := range docs {
			docs[i] = recordsource.Document{
				filters.GroupKeyField: doc[q.key],
				q.wrapAs:              doc,
			}
		}
	}
	return docs, a.finish(recordsource.OpAggregate, collection, "", start, len(docs), nil)
}

// DistinctValues returns the sorted distinct non-null values of field.
func (a *Adapter) DistinctValues(ctx context.Context, collection string, field string) ([]string, error) {
	start := time.Now()

	values := make([]string, 0)
	if err := a.builder(ctx, collection).Distinct(field).Scan(&values).Error; err != nil {
		return nil, a.finish(recordsource.OpDistinctValues, collection, field, start, 0, err)
	}
	return values, a.finish(recordsource.OpDistinctValues, collection, field, start, len(values), nil)
}

// FindOne returns the row whose _id equals id.
func (a *Adapter) FindOne(ctx context.Context, collection string, id string) (recordsource.Document, error) {
	start := time.Now()

	var rows []map[string]interface{}
	if err := a.builder(ctx, collection).ByID(id).Limit(1).Find(&rows).Error; err != nil {
		return nil, a.finish(recordsource.OpFindOne, collection, "", start, 0, err)
	}
	if len(rows) == 0 {
		return nil, a.finish(recordsource.OpFindOne, collection, "", start, 0, recordsource.ErrNotFound)
	}
	return toDocument(rows[0]), a.finish(recordsource.OpFindOne, collection, "", start, 1, nil)
}

func toResultSet(rows []map[string]interface{}) recordsource.ResultSet {
	docs := make(recordsource.ResultSet, len(rows))
	for i, row := range rows {
		docs[i] = toDocument(row)
	}
	return docs
}

func toDocument(row map[string]interface{}) recordsource.Document {
	doc := make(recordsource.Document, len(row))
	for k, v := range row {
		switch val := v.(type) {
		case []byte:
			doc[k] = string(val)
		case time.Time:
			doc[k] = val.UTC()
		default:
			doc[k] = v
		}
	}
	return doc
}

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
