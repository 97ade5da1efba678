package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

const testCollection = "cleanedResale"

// setupMongoContainer starts a MongoDB container and returns a config
// pointing at it.
func setupMongoContainer(ctx context.Context, t *testing.T) Config {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	return DefaultConfig().
		WithURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())).
		WithDatabase("hdbData_test")
}

func seed(ctx context.Context, t *testing.T, client *MongoClient) {
	t.Helper()
	month := func(m time.Month) time.Time { return time.Date(2021, m, 1, 0, 0, 0, 0, time.UTC) }

	_, err := client.Database().Collection(testCollection).InsertMany(ctx, []interface{}{
		bson.M{"town": "BISHAN", "flat_type": "4 ROOM", "Psf": 500.0, "date": month(1), "postal": "570150"},
		bson.M{"town": "BISHAN", "flat_type": "3 ROOM", "Psf": 600.0, "date": month(2), "postal": "570150"},
		bson.M{"town": "TAMPINES", "flat_type": "4 ROOM", "Psf": 400.0, "date": month(1), "postal": "520101"},
		bson.M{"town": "YISHUN", "flat_type": "5 ROOM", "Psf": 350.0, "date": month(3), "postal": "760201"},
	})
	require.NoError(t, err)
}

func TestMongoAdapterIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := setupMongoContainer(ctx, t)

	var client *MongoClient
	var source recordsource.Source

	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		FXModule,
		fx.Populate(&client, &source),
	)
	app.RequireStart()
	defer app.RequireStop()

	seed(ctx, t, client)

	t.Run("FindManySortedAndLimited", func(t *testing.T) {
		pred, err := filters.NewPredicate(
			filters.Entry{Field: "Psf", Condition: filters.Comparison{Gte: 400.0, Lte: 600.0}},
		)
		require.NoError(t, err)
		limit := 2

		docs, err := source.FindMany(ctx, testCollection, pred, recordsource.FindOptions{Sort: "date", Limit: &limit})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, 600.0, docs[0]["Psf"])
		assert.IsType(t, time.Time{}, docs[0]["date"])
		assert.IsType(t, "", docs[0]["_id"])
	})

	t.Run("EqualityAndMembership", func(t *testing.T) {
		eq, _ := filters.NewPredicate(filters.Entry{Field: "town", Condition: filters.Equality{Value: "BISHAN"}})
		in, _ := filters.NewPredicate(filters.Entry{Field: "town", Condition: filters.Membership{Values: []string{"BISHAN"}}})

		byEq, err := source.FindMany(ctx, testCollection, eq, recordsource.FindOptions{})
		require.NoError(t, err)
		byIn, err := source.FindMany(ctx, testCollection, in, recordsource.FindOptions{})
		require.NoError(t, err)
		assert.Len(t, byEq, 2)
		assert.Len(t, byIn, 2)
	})

	t.Run("AggregateAveragePerDate", func(t *testing.T) {
		pipeline, err := filters.NewPipeline(filters.CompiledPredicate{},
			filters.Grouping{Key: "date", Field: "Psf", Func: filters.AccAvg, As: "Psf"},
			filters.AggregationOptions{PostSort: []filters.SortKey{{Field: "_id"}}})
		require.NoError(t, err)

		docs, err := source.Aggregate(ctx, testCollection, pipeline)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.InDelta(t, 450.0, docs[0]["Psf"], 1e-9)
	})

	t.Run("LatestPerPostal", func(t *testing.T) {
		limit := 1000
		pipeline, err := filters.NewPipeline(filters.CompiledPredicate{},
			filters.Grouping{Key: "postal", Func: filters.AccFirst, As: "doc"},
			filters.AggregationOptions{
				PreLimit: &limit,
				PreSort:  []filters.SortKey{{Field: "date", Descending: true}, {Field: "postal"}, {Field: "_id"}},
				Promote:  true,
			})
		require.NoError(t, err)

		docs, err := source.Aggregate(ctx, testCollection, pipeline)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
		for _, doc := range docs {
			assert.Contains(t, doc, "town")
		}
	})

	t.Run("DistinctValues", func(t *testing.T) {
		towns, err := source.DistinctValues(ctx, testCollection, "town")
		require.NoError(t, err)
		assert.Equal(t, []string{"BISHAN", "TAMPINES", "YISHUN"}, towns)
	})

	t.Run("FindOne", func(t *testing.T) {
		docs, err := source.FindMany(ctx, testCollection, filters.CompiledPredicate{}, recordsource.FindOptions{})
		require.NoError(t, err)
		id := docs[0]["_id"].(string)

		doc, err := source.FindOne(ctx, testCollection, id)
		require.NoError(t, err)
		assert.Equal(t, id, doc["_id"])

		_, err = source.FindOne(ctx, testCollection, "000000000000000000000000")
		assert.True(t, recordsource.IsNotFound(err))
	})

	t.Run("HealthCheck", func(t *testing.T) {
		assert.NoError(t, client.HealthCheck(ctx))
	})
}

func TestNewMongoClient_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := DefaultConfig().
		WithURI("mongodb://127.0.0.1:1").
		WithTimeouts(500*time.Millisecond, 500*time.Millisecond)

	_, err := NewMongoClient(cfg, logger.NewNop())
	assert.True(t, recordsource.IsStorageUnavailable(err))
}
