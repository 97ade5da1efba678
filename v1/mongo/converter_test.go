package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hdbmap/geoquery/v1/filters"
)

func TestConvertPredicate(t *testing.T) {
	pred, err := filters.NewPredicate(
		filters.Entry{Field: "Psf", Condition: filters.Comparison{Gte: 400.0, Lte: 600.0}},
		filters.Entry{Field: "lat", Condition: filters.Comparison{Gte: 1.3}},
		filters.Entry{Field: "town", Condition: filters.Equality{Value: "BISHAN"}},
		filters.Entry{Field: "flat_type", Condition: filters.Membership{Values: []string{"3 ROOM", "4 ROOM"}}},
	)
	require.NoError(t, err)

	filter, err := convertPredicate(pred)
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "Psf", Value: bson.D{{Key: "$gte", Value: 400.0}, {Key: "$lte", Value: 600.0}}},
		{Key: "lat", Value: bson.D{{Key: "$gte", Value: 1.3}}},
		{Key: "town", Value: "BISHAN"},
		{Key: "flat_type", Value: bson.D{{Key: "$in", Value: []string{"3 ROOM", "4 ROOM"}}}},
	}, filter)
}

func TestConvertPredicate_Empty(t *testing.T) {
	filter, err := convertPredicate(filters.CompiledPredicate{})
	require.NoError(t, err)
	assert.Equal(t, bson.D{}, filter)
}

func TestConvertCondition_EmptyComparison(t *testing.T) {
	_, err := convertCondition(filters.Comparison{})
	assert.ErrorIs(t, err, filters.ErrInvalidPipeline)
}

func TestConvertPipeline_AveragePrice(t *testing.T) {
	pipeline := filters.Pipeline{
		filters.MatchStage{Field: "town", Condition: filters.Equality{Value: "BISHAN"}},
		filters.GroupStage{Key: "date", Accumulator: filters.AccAvg, Field: "Psf", As: "Psf"},
		filters.SortStage{Keys: []filters.SortKey{{Field: "_id"}}},
	}

	stages, err := convertPipeline(pipeline)
	require.NoError(t, err)

	assert.Equal(t, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "town", Value: "BISHAN"}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$date"},
			{Key: "Psf", Value: bson.D{{Key: "$avg", Value: "$Psf"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}, stages)
}

func TestConvertPipeline_LatestPostals(t *testing.T) {
	pipeline := filters.Pipeline{
		filters.LimitStage{N: 1000},
		filters.SortStage{Keys: []filters.SortKey{{Field: "date", Descending: true}, {Field: "postal"}, {Field: "_id"}}},
		filters.GroupStage{Key: "postal", Accumulator: filters.AccFirst, As: "doc"},
		filters.ReplaceRootStage{Field: "doc"},
	}

	stages, err := convertPipeline(pipeline)
	require.NoError(t, err)

	assert.Equal(t, mongo.Pipeline{
		{{Key: "$limit", Value: int64(1000)}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "postal", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$postal"},
			{Key: "doc", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$doc"}}}},
	}, stages)
}

func TestConvertStage_Count(t *testing.T) {
	doc, err := convertStage(filters.GroupStage{Key: "town", Accumulator: filters.AccCount, As: "n"})
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$town"},
		{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}, doc)
}

func TestToDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	doc := toDocument(bson.M{
		"_id":   oid,
		"date":  primitive.NewDateTimeFromTime(when),
		"year":  int32(2021),
		"doc":   bson.M{"_id": oid},
		"items": bson.A{oid, "x"},
	})

	assert.Equal(t, oid.Hex(), doc["_id"])
	assert.Equal(t, when, doc["date"])
	assert.Equal(t, int64(2021), doc["year"])
	assert.Equal(t, map[string]any{"_id": oid.Hex()}, doc["doc"])
	assert.Equal(t, []any{oid.Hex(), "x"}, doc["items"])
}

func TestIDFilter(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, bson.D{{Key: "_id", Value: oid}}, idFilter(oid.Hex()))
	assert.Equal(t, bson.D{{Key: "_id", Value: "listing-42"}}, idFilter("listing-42"))
}
