package mongo

import (
	"context"

	"go.uber.org/fx"

	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/observability"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// FXModule connects to MongoDB on construction, provides *MongoClient,
// *Adapter and recordsource.Source, and disconnects on stop.
//
// Dependencies: mongo.Config and logger.Logger; an observability.Observer is
// used when present.
var FXModule = fx.Module("mongo",
	fx.Provide(
		NewMongoClientWithDI,
		NewAdapterWithDI,
		func(a *Adapter) recordsource.Source { return a },
	),
	fx.Invoke(RegisterMongoLifecycle),
)

// MongoParams groups the dependencies of NewMongoClientWithDI.
type MongoParams struct {
	fx.In

	Config Config
	Logger logger.Logger
}

// NewMongoClientWithDI connects using the injected configuration.
func NewMongoClientWithDI(p MongoParams) (*MongoClient, error) {
	return NewMongoClient(p.Config, p.Logger)
}

// AdapterParams groups the dependencies of NewAdapterWithDI.
type AdapterParams struct {
	fx.In

	Client   *MongoClient
	Observer observability.Observer `optional:"true"`
}

// NewAdapterWithDI builds an adapter over the client's database.
func NewAdapterWithDI(p AdapterParams) *Adapter {
	return NewAdapter(p.Client.Database()).WithObserver(p.Observer)
}

// RegisterMongoLifecycle disconnects the client when the application stops.
func RegisterMongoLifecycle(lc fx.Lifecycle, client *MongoClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
}
