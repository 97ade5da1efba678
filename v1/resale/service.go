package resale

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// Logger is the logging surface used by Service.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Tracer starts the spans wrapping each service call.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	SetAttributes(span trace.Span, attrs map[string]interface{})
	RecordErrorOnSpan(span trace.Span, err error)
}

// Service answers the reads of the map front end.
type Service struct {
	source   recordsource.Source
	cfg      Config
	records  filters.Schema
	listings filters.Schema
	logger   Logger
	tracer   Tracer
}

// NewService validates cfg and both schemas.
func NewService(source recordsource.Source, cfg Config, log Logger, tracer Tracer) (*Service, error) {
	policy, err := filters.ParseUnknownFieldPolicy(cfg.UnknownFields)
	if err != nil {
		return nil, err
	}
	if cfg.RecordsCollection == "" || cfg.ListingsCollection == "" {
		return nil, fmt.Errorf("resale: collection names are required")
	}

	s := &Service{
		source:   source,
		cfg:      cfg,
		records:  RecordsSchema(policy),
		listings: ListingsSchema(policy),
		logger:   log,
		tracer:   tracer,
	}
	for _, schema := range []filters.Schema{s.records, s.listings} {
		if err := schema.Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RecordsSchema returns the schema records searches are compiled with.
func (s *Service) RecordsSchema() filters.Schema { return s.records }

// ListingsSchema returns the schema listings searches are compiled with.
func (s *Service) ListingsSchema() filters.Schema { return s.listings }

func (s *Service) startSpan(ctx context.Context, name string, attrs map[string]interface{}) (context.Context, func(error)) {
	ctx, span := s.tracer.StartSpan(ctx, "resale."+name)
	s.tracer.SetAttributes(span, attrs)
	return ctx, func(err error) {
		if err != nil {
			s.tracer.RecordErrorOnSpan(span, err)
			s.logger.ErrorWithContext(ctx, "resale "+name+" failed", err, attrs)
		}
		span.End()
	}
}

// GetRecord returns one resale transaction.
func (s *Service) GetRecord(ctx context.Context, id string) (doc recordsource.Document, err error) {
	ctx, end := s.startSpan(ctx, "GetRecord", map[string]interface{}{"id": id})
	defer func() { end(err) }()

	return s.source.FindOne(ctx, s.cfg.RecordsCollection, id)
}

// GetListing returns one listing.
func (s *Service) GetListing(ctx context.Context, id string) (doc recordsource.Document, err error) {
	ctx, end := s.startSpan(ctx, "GetListing", map[string]interface{}{"id": id})
	defer func() { end(err) }()

	return s.source.FindOne(ctx, s.cfg.ListingsCollection, id)
}

// GetRecords returns the transactions matching req. A limited search returns
// the most recent transactions first.
func (s *Service) GetRecords(ctx context.Context, req Request) (docs recordsource.ResultSet, err error) {
	ctx, end := s.startSpan(ctx, "GetRecords", map[string]interface{}{"collection": s.cfg.RecordsCollection})
	defer func() { end(err) }()

	return s.search(ctx, s.cfg.RecordsCollection, s.records, req, s.cfg.DefaultRecordsLimit)
}

// GetListings returns the listings matching req. Listings are not ordered.
func (s *Service) GetListings(ctx context.Context, req Request) (docs recordsource.ResultSet, err error) {
	ctx, end := s.startSpan(ctx, "GetListings", map[string]interface{}{"collection": s.cfg.ListingsCollection})
	defer func() { end(err) }()

	return s.search(ctx, s.cfg.ListingsCollection, s.listings, req, s.cfg.DefaultListingsLimit)
}

func (s *Service) search(ctx context.Context, collection string, schema filters.Schema, req Request, defaultLimit int) (recordsource.ResultSet, error) {
	spec := req.FilterSpec()
	if spec.Limit == nil && s.cfg.ApplyDefaultLimits && defaultLimit > 0 {
		spec.Limit = &defaultLimit
	}

	query, err := filters.AssembleQuery(spec, schema)
	if err != nil {
		return nil, err
	}

	opts := recordsource.FindOptions{Limit: query.Limit}
	if query.Limit != nil {
		opts.Sort = schema.RecencyField
	}

	s.logger.DebugWithContext(ctx, "Compiled search", nil, map[string]interface{}{
		"collection": collection,
		"fields":     query.Predicate.Fields(),
		"sort":       opts.Sort,
	})
	return s.source.FindMany(ctx, collection, query.Predicate, opts)
}

// GetRecordsAveragePrice returns the mean Psf per transaction date of the
// records matching req, oldest first. The request limit does not apply.
func (s *Service) GetRecordsAveragePrice(ctx context.Context, req Request) (buckets []BucketAggregate, err error) {
	ctx, end := s.startSpan(ctx, "GetRecordsAveragePrice", map[string]interface{}{"collection": s.cfg.RecordsCollection})
	defer func() { end(err) }()

	spec := req.FilterSpec()
	spec.Limit = nil

	pipeline, err := AveragePricePipeline(spec, s.records)
	if err != nil {
		return nil, err
	}

	docs, err := s.source.Aggregate(ctx, s.cfg.RecordsCollection, pipeline)
	if err != nil {
		return nil, err
	}

	buckets = make([]BucketAggregate, 0, len(docs))
	for _, doc := range docs {
		raw, ok := doc[fieldPsf]
		if !ok || raw == nil {
			continue
		}
		value, err := filters.ToFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("bucket %v: %w", doc[filters.GroupKeyField], err)
		}
		buckets = append(buckets, BucketAggregate{
			BucketKey:      bucketKey(doc[filters.GroupKeyField]),
			AggregateValue: value,
		})
	}
	return buckets, nil
}

// AveragePricePipeline groups the records matching spec by date and
// averages their Psf, oldest date first.
func AveragePricePipeline(spec filters.FilterSpec, schema filters.Schema) (filters.Pipeline, error) {
	return filters.AssembleAggregation(spec, schema,
		filters.Grouping{Key: fieldDate, Field: fieldPsf, Func: filters.AccAvg, As: fieldPsf},
		filters.AggregationOptions{PostSort: []filters.SortKey{{Field: filters.GroupKeyField}}},
	)
}

func bucketKey(v any) string {
	switch k := v.(type) {
	case nil:
		return ""
	case string:
		return k
	case time.Time:
		return k.UTC().Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	default:
		return fmt.Sprint(k)
	}
}

// GetLatestPostals returns the most recent transaction of each postal code
// among the latest records scanned, newest first.
func (s *Service) GetLatestPostals(ctx context.Context) (docs recordsource.ResultSet, err error) {
	ctx, end := s.startSpan(ctx, "GetLatestPostals", map[string]interface{}{"collection": s.cfg.RecordsCollection})
	defer func() { end(err) }()

	scan := s.cfg.LatestPostalsScan
	pipeline, err := filters.AssembleAggregation(filters.FilterSpec{}, s.records,
		filters.Grouping{Key: fieldPostal, Func: filters.AccFirst, As: "doc"},
		filters.AggregationOptions{
			PreLimit: &scan,
			PreSort: []filters.SortKey{
				{Field: fieldDate, Descending: true},
				{Field: fieldPostal},
				{Field: recordsource.IDField},
			},
			PostSort: []filters.SortKey{
				{Field: fieldDate, Descending: true},
				{Field: fieldPostal},
			},
			Promote: true,
		},
	)
	if err != nil {
		return nil, err
	}

	docs, err = s.source.Aggregate(ctx, s.cfg.RecordsCollection, pipeline)
	if err != nil {
		return nil, err
	}
	if limit := s.cfg.LatestPostalsLimit; limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// GetDistinctTowns returns every town with at least one transaction.
func (s *Service) GetDistinctTowns(ctx context.Context) (values []string, err error) {
	ctx, end := s.startSpan(ctx, "GetDistinctTowns", map[string]interface{}{"field": fieldTown})
	defer func() { end(err) }()

	return s.source.DistinctValues(ctx, s.cfg.RecordsCollection, fieldTown)
}

// GetDistinctFlatTypes returns every flat type with at least one transaction.
func (s *Service) GetDistinctFlatTypes(ctx context.Context) (values []string, err error) {
	ctx, end := s.startSpan(ctx, "GetDistinctFlatTypes", map[string]interface{}{"field": fieldFlatType})
	defer func() { end(err) }()

	return s.source.DistinctValues(ctx, s.cfg.RecordsCollection, fieldFlatType)
}

// GetFilterOptions fetches the towns and flat types concurrently.
func (s *Service) GetFilterOptions(ctx context.Context) (opts FilterOptions, err error) {
	ctx, end := s.startSpan(ctx, "GetFilterOptions", nil)
	defer func() { end(err) }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		towns, err := s.GetDistinctTowns(gctx)
		opts.Towns = towns
		return err
	})
	g.Go(func() error {
		flatTypes, err := s.GetDistinctFlatTypes(gctx)
		opts.FlatTypes = flatTypes
		return err
	})
	if err := g.Wait(); err != nil {
		return FilterOptions{}, err
	}
	return opts, nil
}
