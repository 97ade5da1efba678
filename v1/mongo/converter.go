package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// ── Predicates ───────────────────────────────────────────────────────────────

// convertPredicate renders a predicate as a query document, one key per
// target field in predicate order.
func convertPredicate(p filters.CompiledPredicate) (bson.D, error) {
	filter := bson.D{}
	for _, e := range p.Entries() {
		value, err := convertCondition(e.Condition)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", e.Field, err)
		}
		filter = append(filter, bson.E{Key: e.Field, Value: value})
	}
	return filter, nil
}

func convertCondition(c filters.Condition) (any, error) {
	switch cond := c.(type) {
	case filters.Equality:
		return cond.Value, nil
	case filters.Membership:
		return bson.D{{Key: "$in", Value: cond.Values}}, nil
	case filters.Comparison:
		ops := bson.D{}
		if cond.Gte != nil {
			ops = append(ops, bson.E{Key: "$gte", Value: cond.Gte})
		}
		if cond.Lte != nil {
			ops = append(ops, bson.E{Key: "$lte", Value: cond.Lte})
		}
		if len(ops) == 0 {
			return nil, fmt.Errorf("%w: comparison without bounds", filters.ErrInvalidPipeline)
		}
		return ops, nil
	default:
		return nil, fmt.Errorf("%w: unsupported condition %T", filters.ErrInvalidPipeline, c)
	}
}

// ── Pipelines ────────────────────────────────────────────────────────────────

var accumulators = map[filters.Accumulator]string{
	filters.AccAvg:   "$avg",
	filters.AccSum:   "$sum",
	filters.AccMin:   "$min",
	filters.AccMax:   "$max",
	filters.AccCount: "$sum",
	filters.AccFirst: "$first",
}

func convertPipeline(p filters.Pipeline) (mongo.Pipeline, error) {
	out := make(mongo.Pipeline, 0, len(p))
	for i, stage := range p {
		doc, err := convertStage(stage)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func convertStage(stage filters.Stage) (bson.D, error) {
	switch st := stage.(type) {
	case filters.LimitStage:
		return bson.D{{Key: "$limit", Value: int64(st.N)}}, nil

	case filters.MatchStage:
		value, err := convertCondition(st.Condition)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$match", Value: bson.D{{Key: st.Field, Value: value}}}}, nil

	case filters.SortStage:
		return bson.D{{Key: "$sort", Value: convertSort(st.Keys)}}, nil

	case filters.GroupStage:
		op, ok := accumulators[st.Accumulator]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported accumulator %q", filters.ErrInvalidPipeline, st.Accumulator)
		}
		var operand any = "$" + st.Field
		switch {
		case st.Accumulator == filters.AccCount:
			operand = 1
		case st.Field == "":
			operand = "$$ROOT"
		}
		return bson.D{{Key: "$group", Value: bson.D{
			{Key: filters.GroupKeyField, Value: "$" + st.Key},
			{Key: st.As, Value: bson.D{{Key: op, Value: operand}}},
		}}}, nil

	case filters.ReplaceRootStage:
		return bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$" + st.Field}}}}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported stage %T", filters.ErrInvalidPipeline, stage)
	}
}

func convertSort(keys []filters.SortKey) bson.D {
	sort := make(bson.D, 0, len(keys))
	for _, k := range keys {
		dir := 1
		if k.Descending {
			dir = -1
		}
		sort = append(sort, bson.E{Key: k.Field, Value: dir})
	}
	return sort
}

// ── Results ──────────────────────────────────────────────────────────────────

// toDocument converts driver values to plain Go values: ObjectIDs become hex
// strings, DateTimes become UTC time.Time and nested documents become maps.
func toDocument(m bson.M) recordsource.Document {
	doc := make(recordsource.Document, len(m))
	for k, v := range m {
		doc[k] = toValue(v)
	}
	return doc
}

func toValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC()
	case primitive.Decimal128:
		return val.String()
	case bson.M:
		return toDocument(val)
	case bson.D:
		return toDocument(val.Map())
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toValue(item)
		}
		return out
	case int32:
		return int64(val)
	default:
		return v
	}
}

// idFilter matches an ObjectID when id is one, and the raw string otherwise.
func idFilter(id string) bson.D {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.D{{Key: recordsource.IDField, Value: oid}}
	}
	return bson.D{{Key: recordsource.IDField, Value: id}}
}
