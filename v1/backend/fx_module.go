package backend

import (
	"go.uber.org/fx"

	"github.com/hdbmap/geoquery/v1/httpapi"
	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/memstore"
	"github.com/hdbmap/geoquery/v1/mongo"
	"github.com/hdbmap/geoquery/v1/observability"
	"github.com/hdbmap/geoquery/v1/postgres"
	"github.com/hdbmap/geoquery/v1/recordsource"
	"github.com/hdbmap/geoquery/v1/resale"
)

// Module returns the fx option providing recordsource.Source for cfg.Kind.
// The mongo kind needs a mongo.Config and the postgres kind a
// postgres.Config in the container; the memory kind needs backend.Config
// and resale.Config.
func Module(cfg Config) fx.Option {
	switch cfg.Kind {
	case KindPostgres:
		return fx.Module("backend",
			postgres.FXModule,
			fx.Provide(func(pg *postgres.Postgres) httpapi.HealthChecker { return pg }),
		)
	case KindMemory:
		return fx.Module("backend",
			fx.Provide(NewMemoryStore),
			fx.Provide(func(s *memstore.Store) recordsource.Source { return s }),
		)
	default:
		return fx.Module("backend",
			mongo.FXModule,
			fx.Provide(func(c *mongo.MongoClient) httpapi.HealthChecker { return c }),
		)
	}
}

// MemoryParams groups the dependencies of NewMemoryStore.
type MemoryParams struct {
	fx.In

	Config   Config
	Resale   resale.Config
	Logger   logger.Logger
	Observer observability.Observer `optional:"true"`
}

// NewMemoryStore loads the configured seed file into a new store.
func NewMemoryStore(params MemoryParams) (*memstore.Store, error) {
	store := memstore.New().WithObserver(params.Observer)
	if params.Config.SeedFile == "" {
		params.Logger.Warn("In-memory backend has no seed file", nil, nil)
		return store, nil
	}

	if err := store.LoadFile(params.Config.SeedFile, resale.TemporalFields...); err != nil {
		return nil, err
	}
	params.Logger.Info("Loaded seed file", nil, map[string]interface{}{
		"path":     params.Config.SeedFile,
		"records":  store.Len(params.Resale.RecordsCollection),
		"listings": store.Len(params.Resale.ListingsCollection),
	})
	return store, nil
}
