package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/observability"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

type resaleRow struct {
	ID       string    `gorm:"column:_id;primaryKey"`
	Town     string    `gorm:"column:town"`
	FlatType string    `gorm:"column:flat_type"`
	Psf      float64   `gorm:"column:Psf"`
	Date     time.Time `gorm:"column:date"`
	Postal   string    `gorm:"column:postal"`
}

type testObserver struct {
	ops []observability.OperationContext
}

func (o *testObserver) ObserveOperation(ctx observability.OperationContext) {
	o.ops = append(o.ops, ctx)
}

// setupPostgresContainer starts PostgreSQL and returns a config pointing at it.
func setupPostgresContainer(ctx context.Context, t *testing.T) Config {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "hdbData",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
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
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Connection.Host = host
	cfg.Connection.Port = port.Port()
	cfg.Connection.User = "testuser"
	cfg.Connection.Password = "testpass"
	return cfg
}

func seedTable(ctx context.Context, t *testing.T, pg *Postgres) {
	t.Helper()
	month := func(m time.Month) time.Time { return time.Date(2021, m, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, pg.Migrate(ctx, map[string]interface{}{testTable: &resaleRow{}}))
	rows := []resaleRow{
		{ID: "a", Town: "BISHAN", FlatType: "4 ROOM", Psf: 500, Date: month(1), Postal: "570150"},
		{ID: "b", Town: "BISHAN", FlatType: "3 ROOM", Psf: 600, Date: month(2), Postal: "570150"},
		{ID: "c", Town: "TAMPINES", FlatType: "4 ROOM", Psf: 400, Date: month(1), Postal: "520101"},
		{ID: "d", Town: "YISHUN", FlatType: "5 ROOM", Psf: 350, Date: month(3), Postal: "760201"},
	}
	require.NoError(t, pg.DB().WithContext(ctx).Table(testTable).Create(&rows).Error)
}

func TestPostgresAdapterIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := setupPostgresContainer(ctx, t)
	observer := &testObserver{}

	var pg *Postgres
	var source recordsource.Source

	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		fx.Provide(func() observability.Observer { return observer }),
		FXModule,
		fx.Populate(&pg, &source),
	)
	app.RequireStart()
	defer app.RequireStop()

	seedTable(ctx, t, pg)

	t.Run("FindManySortedAndLimited", func(t *testing.T) {
		pred := mustPredicate(t, filters.Entry{Field: "Psf", Condition: filters.Comparison{Gte: 400.0, Lte: 600.0}})
		limit := 2

		docs, err := source.FindMany(ctx, testTable, pred, recordsource.FindOptions{Sort: "date", Limit: &limit})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "b", docs[0]["_id"])
		assert.Equal(t, 600.0, docs[0]["Psf"])
		assert.IsType(t, time.Time{}, docs[0]["date"])
	})

	t.Run("AggregateAveragePerDate", func(t *testing.T) {
		pipeline, err := filters.NewPipeline(filters.CompiledPredicate{},
			filters.Grouping{Key: "date", Field: "Psf", Func: filters.AccAvg, As: "Psf"},
			filters.AggregationOptions{PostSort: []filters.SortKey{{Field: "_id"}}})
		require.NoError(t, err)

		docs, err := source.Aggregate(ctx, testTable, pipeline)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, 450.0, docs[0]["Psf"])
		assert.Equal(t, 600.0, docs[1]["Psf"])
		assert.Equal(t, 350.0, docs[2]["Psf"])
	})

	t.Run("AggregateLatestPerPostal", func(t *testing.T) {
		preLimit := 1000
		pipeline, err := filters.NewPipeline(filters.CompiledPredicate{},
			filters.Grouping{Key: "postal", Func: filters.AccFirst, As: "doc"},
			filters.AggregationOptions{
				PreLimit: &preLimit,
				PreSort:  []filters.SortKey{{Field: "date", Descending: true}, {Field: "_id"}},
				Promote:  true,
			})
		require.NoError(t, err)

		docs, err := source.Aggregate(ctx, testTable, pipeline)
		require.NoError(t, err)
		got := make([]string, len(docs))
		for i, d := range docs {
			got[i] = d["_id"].(string)
		}
		assert.ElementsMatch(t, []string{"b", "c", "d"}, got)
	})

	t.Run("AggregateUnknownColumn", func(t *testing.T) {
		pipeline, err := filters.NewPipeline(filters.CompiledPredicate{},
			filters.Grouping{Key: "date", Field: "Psff", Func: filters.AccAvg, As: "Psf"},
			filters.AggregationOptions{})
		require.NoError(t, err)

		_, err = source.Aggregate(ctx, testTable, pipeline)
		assert.True(t, filters.IsInvalidPipeline(err))
	})

	t.Run("DistinctValues", func(t *testing.T) {
		values, err := source.DistinctValues(ctx, testTable, "town")
		require.NoError(t, err)
		assert.Equal(t, []string{"BISHAN", "TAMPINES", "YISHUN"}, values)
	})

	t.Run("FindOne", func(t *testing.T) {
		doc, err := source.FindOne(ctx, testTable, "c")
		require.NoError(t, err)
		assert.Equal(t, "TAMPINES", doc["town"])

		_, err = source.FindOne(ctx, testTable, "missing")
		assert.True(t, recordsource.IsNotFound(err))
	})

	t.Run("ObserverReports", func(t *testing.T) {
		require.NotEmpty(t, observer.ops)
		for _, op := range observer.ops {
			assert.Equal(t, "postgres", op.Component)
			assert.Equal(t, testTable, op.Resource)
		}
	})

	t.Run("HealthCheck", func(t *testing.T) {
		assert.NoError(t, pg.HealthCheck(ctx))
	})
}

func TestNewPostgres_Unreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection.Host = "127.0.0.1"
	cfg.Connection.Port = "1"

	_, err := NewPostgres(cfg, logger.NewNop())
	require.Error(t, err)
	assert.True(t, recordsource.IsStorageUnavailable(err))
}
