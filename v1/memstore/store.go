package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/observability"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

const component = "memstore"

// Store holds named collections of documents.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]recordsource.Document
	seq         atomic.Uint64
	observer    observability.Observer
}

var _ recordsource.Source = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{collections: make(map[string][]recordsource.Document)}
}

// WithObserver attaches an observer that receives one report per operation.
func (s *Store) WithObserver(observer observability.Observer) *Store {
	s.observer = observer
	return s
}

// Insert appends documents to collection. Documents without an _id get a
// generated one.
func (s *Store) Insert(collection string, docs ...recordsource.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		stored := clone(doc)
		if _, ok := stored[recordsource.IDField]; !ok {
			stored[recordsource.IDField] = fmt.Sprintf("%024x", s.seq.Add(1))
		}
		s.collections[collection] = append(s.collections[collection], stored)
	}
}

// Len returns the number of documents in collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// LoadJSON reads an object mapping collection names to document arrays.
// String values of the given temporal fields are parsed into time.Time.
func (s *Store) LoadJSON(r io.Reader, temporalFields ...string) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var seed map[string][]map[string]any
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	for _, name := range sortedNames(seed) {
		docs := make([]recordsource.Document, 0, len(seed[name]))
		for _, raw := range seed[name] {
			doc, err := normalize(raw, temporalFields)
			if err != nil {
				return fmt.Errorf("collection %q: %w", name, err)
			}
			docs = append(docs, doc)
		}
		s.Insert(name, docs...)
	}
	return nil
}

// LoadFile is LoadJSON over the file at path.
func (s *Store) LoadFile(path string, temporalFields ...string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.LoadJSON(f, temporalFields...)
}

func normalize(raw map[string]any, temporalFields []string) (recordsource.Document, error) {
	doc := make(recordsource.Document, len(raw))
	for k, v := range raw {
		if n, ok := v.(json.Number); ok {
			f, err := n.Float64()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			v = f
		}
		doc[k] = v
	}
	for _, field := range temporalFields {
		s, ok := doc[field].(string)
		if !ok {
			continue
		}
		t, err := filters.ToTime(s)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		doc[field] = t
	}
	return doc, nil
}

func (s *Store) snapshot(ctx context.Context, collection string) ([]recordsource.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.collections[collection]
	out := make([]recordsource.Document, len(docs))
	copy(out, docs)
	return out, nil
}

// FindMany returns the documents matching predicate.
func (s *Store) FindMany(ctx context.Context, collection string, predicate filters.CompiledPredicate, opts recordsource.FindOptions) (recordsource.ResultSet, error) {
	start := time.Now()
	docs, err := s.snapshot(ctx, collection)
	if err != nil {
		return nil, s.finish(recordsource.OpFindMany, collection, "", start, 0, err)
	}

	matched := make([]recordsource.Document, 0, len(docs))
	for _, doc := range docs {
		if matchesAll(doc, predicate) {
			matched = append(matched, doc)
		}
	}
	if opts.Sort != "" {
		sortDocuments(matched, []filters.SortKey{{Field: opts.Sort, Descending: true}})
	}
	if opts.Limit != nil && *opts.Limit < len(matched) {
		matched = matched[:max(*opts.Limit, 0)]
	}

	out := make(recordsource.ResultSet, len(matched))
	for i, doc := range matched {
		out[i] = clone(doc)
	}
	return out, s.finish(recordsource.OpFindMany, collection, "", start, len(out), nil)
}

// Aggregate runs pipeline over collection.
func (s *Store) Aggregate(ctx context.Context, collection string, pipeline filters.Pipeline) (recordsource.ResultSet, error) {
	start := time.Now()
	if err := pipeline.Validate(); err != nil {
		return nil, s.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}

	docs, err := s.snapshot(ctx, collection)
	if err != nil {
		return nil, s.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}

	out, err := runPipeline(docs, pipeline)
	if err != nil {
		return nil, s.finish(recordsource.OpAggregate, collection, "", start, 0, err)
	}
	return out, s.finish(recordsource.OpAggregate, collection, "", start, len(out), nil)
}

// DistinctValues returns the sorted unique string values of field.
func (s *Store) DistinctValues(ctx context.Context, collection string, field string) ([]string, error) {
	start := time.Now()
	docs, err := s.snapshot(ctx, collection)
	if err != nil {
		return nil, s.finish(recordsource.OpDistinctValues, collection, field, start, 0, err)
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, doc := range docs {
		v, ok := doc[field]
		if !ok || v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			str = fmt.Sprint(v)
		}
		if _, dup := seen[str]; dup {
			continue
		}
		seen[str] = struct{}{}
		values = append(values, str)
	}
	sort.Strings(values)
	return values, s.finish(recordsource.OpDistinctValues, collection, field, start, len(values), nil)
}

// FindOne returns the document whose _id equals id.
func (s *Store) FindOne(ctx context.Context, collection string, id string) (recordsource.Document, error) {
	start := time.Now()
	docs, err := s.snapshot(ctx, collection)
	if err != nil {
		return nil, s.finish(recordsource.OpFindOne, collection, "", start, 0, err)
	}

	for _, doc := range docs {
		if fmt.Sprint(doc[recordsource.IDField]) == id {
			return clone(doc), s.finish(recordsource.OpFindOne, collection, "", start, 1, nil)
		}
	}
	return nil, s.finish(recordsource.OpFindOne, collection, "", start, 0, recordsource.ErrNotFound)
}

func (s *Store) finish(op, collection, field string, start time.Time, size int, err error) error {
	if s.observer != nil {
		s.observer.ObserveOperation(observability.OperationContext{
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

func clone(doc recordsource.Document) recordsource.Document {
	out := make(recordsource.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func sortedNames(m map[string][]map[string]any) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
