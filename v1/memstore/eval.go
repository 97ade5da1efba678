package memstore

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

func matchesAll(doc recordsource.Document, predicate filters.CompiledPredicate) bool {
	for _, e := range predicate.Entries() {
		if !matches(doc, e.Field, e.Condition) {
			return false
		}
	}
	return true
}

func matches(doc recordsource.Document, field string, cond filters.Condition) bool {
	v, ok := doc[field]
	if !ok {
		return false
	}

	switch c := cond.(type) {
	case filters.Equality:
		return equal(v, c.Value)
	case filters.Membership:
		for _, candidate := range c.Values {
			if equal(v, candidate) {
				return true
			}
		}
		return false
	case filters.Comparison:
		if c.Gte != nil {
			cmp, ok := compare(v, c.Gte)
			if !ok || cmp < 0 {
				return false
			}
		}
		if c.Lte != nil {
			cmp, ok := compare(v, c.Lte)
			if !ok || cmp > 0 {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equal(a, b any) bool {
	cmp, ok := compare(a, b)
	return ok && cmp == 0
}

// compare orders two values of the same family: numbers, times or strings.
// Values of different families are not comparable.
func compare(a, b any) (int, bool) {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return at.Compare(bt), true
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		if !ok || ab == bb {
			return 0, ok
		}
		if !ab {
			return -1, true
		}
		return 1, true
	}

	if _, isString := b.(string); isString {
		return 0, false
	}
	af, err := filters.ToFloat(a)
	if err != nil {
		return 0, false
	}
	bf, err := filters.ToFloat(b)
	if err != nil {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

// order sorts missing values first, then by family, then by value.
func order(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if cmp, ok := compare(a, b); ok {
		return cmp
	}
	return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}

func sortDocuments(docs []recordsource.Document, keys []filters.SortKey) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			cmp := order(docs[i][k.Field], docs[j][k.Field])
			if cmp == 0 {
				continue
			}
			if k.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func runPipeline(docs []recordsource.Document, pipeline filters.Pipeline) (recordsource.ResultSet, error) {
	for _, stage := range pipeline {
		var err error
		switch st := stage.(type) {
		case filters.LimitStage:
			if st.N < len(docs) {
				docs = docs[:st.N]
			}
		case filters.MatchStage:
			docs = filterDocuments(docs, st)
		case filters.SortStage:
			sorted := make([]recordsource.Document, len(docs))
			copy(sorted, docs)
			sortDocuments(sorted, st.Keys)
			docs = sorted
		case filters.GroupStage:
			docs, err = group(docs, st)
		case filters.ReplaceRootStage:
			docs, err = replaceRoot(docs, st)
		default:
			err = fmt.Errorf("%w: unsupported stage %T", filters.ErrInvalidPipeline, stage)
		}
		if err != nil {
			return nil, err
		}
	}

	out := make(recordsource.ResultSet, len(docs))
	for i, doc := range docs {
		out[i] = clone(doc)
	}
	return out, nil
}

func filterDocuments(docs []recordsource.Document, st filters.MatchStage) []recordsource.Document {
	out := make([]recordsource.Document, 0, len(docs))
	for _, doc := range docs {
		if matches(doc, st.Field, st.Condition) {
			out = append(out, doc)
		}
	}
	return out
}

type bucket struct {
	key   any
	count int
	sum   float64
	nums  int
	value any
	set   bool
}

func group(docs []recordsource.Document, st filters.GroupStage) ([]recordsource.Document, error) {
	if len(docs) > 0 {
		if !anyHas(docs, st.Key) {
			return nil, fmt.Errorf("%w: group key %q is not a document field", filters.ErrInvalidPipeline, st.Key)
		}
		if st.Field != "" && !anyHas(docs, st.Field) {
			return nil, fmt.Errorf("%w: group field %q is not a document field", filters.ErrInvalidPipeline, st.Field)
		}
	}

	index := make(map[string]*bucket)
	var buckets []*bucket
	for _, doc := range docs {
		key := doc[st.Key]
		id := fmt.Sprintf("%T:%v", key, key)
		if t, ok := key.(time.Time); ok {
			id = "time:" + t.UTC().Format(time.RFC3339Nano)
		}
		b, ok := index[id]
		if !ok {
			b = &bucket{key: key}
			index[id] = b
			buckets = append(buckets, b)
		}
		b.count++
		accumulate(b, doc, st)
	}

	out := make([]recordsource.Document, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, recordsource.Document{
			filters.GroupKeyField: b.key,
			st.As:                 result(b, st.Accumulator),
		})
	}
	return out, nil
}

func accumulate(b *bucket, doc recordsource.Document, st filters.GroupStage) {
	switch st.Accumulator {
	case filters.AccFirst:
		if b.set {
			return
		}
		b.set = true
		if st.Field == "" {
			b.value = clone(doc)
		} else {
			b.value = doc[st.Field]
		}
	case filters.AccCount:
	case filters.AccAvg, filters.AccSum:
		if f, err := filters.ToFloat(doc[st.Field]); err == nil {
			b.sum += f
			b.nums++
		}
	case filters.AccMin, filters.AccMax:
		v, ok := doc[st.Field]
		if !ok || v == nil {
			return
		}
		if !b.set {
			b.value, b.set = v, true
			return
		}
		cmp := order(v, b.value)
		if (st.Accumulator == filters.AccMin && cmp < 0) || (st.Accumulator == filters.AccMax && cmp > 0) {
			b.value = v
		}
	}
}

func result(b *bucket, acc filters.Accumulator) any {
	switch acc {
	case filters.AccCount:
		return float64(b.count)
	case filters.AccSum:
		return b.sum
	case filters.AccAvg:
		if b.nums == 0 {
			return nil
		}
		return b.sum / float64(b.nums)
	default:
		return b.value
	}
}

func replaceRoot(docs []recordsource.Document, st filters.ReplaceRootStage) ([]recordsource.Document, error) {
	out := make([]recordsource.Document, 0, len(docs))
	for _, doc := range docs {
		root, ok := doc[st.Field].(recordsource.Document)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an embedded document", filters.ErrInvalidPipeline, st.Field)
		}
		out = append(out, root)
	}
	return out, nil
}

func anyHas(docs []recordsource.Document, field string) bool {
	for _, doc := range docs {
		if _, ok := doc[field]; ok {
			return true
		}
	}
	return false
}
