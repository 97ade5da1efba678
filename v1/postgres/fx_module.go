package postgres

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/observability"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// FXModule connects to PostgreSQL, provides *Postgres, *Adapter and
// recordsource.Source, and runs the connection monitor for the application's
// lifetime.
//
// Dependencies: postgres.Config and logger.Logger; an observability.Observer
// is used when present.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgresClientWithDI,
		NewAdapterWithDI,
		func(a *Adapter) recordsource.Source { return a },
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies of NewPostgresClientWithDI.
type PostgresParams struct {
	fx.In

	Config Config
	Logger logger.Logger
}

// NewPostgresClientWithDI connects using the injected configuration.
func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	return NewPostgres(params.Config, params.Logger)
}

// AdapterParams groups the dependencies of NewAdapterWithDI.
type AdapterParams struct {
	fx.In

	Postgres *Postgres
	Observer observability.Observer `optional:"true"`
}

// NewAdapterWithDI builds an adapter over the injected client.
func NewAdapterWithDI(params AdapterParams) *Adapter {
	return NewAdapter(params.Postgres).WithObserver(params.Observer)
}

// PostgresLifeCycleParams groups the dependencies of RegisterPostgresLifecycle.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Postgres  *Postgres
}

// RegisterPostgresLifecycle starts MonitorConnection and RetryConnection on
// start. On stop it waits for both loops to exit, then closes the pool.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	wg := &sync.WaitGroup{}
	loopCtx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.Postgres.MonitorConnection(loopCtx)
			}()
			go func() {
				defer wg.Done()
				params.Postgres.RetryConnection(loopCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			wg.Wait()
			return params.Postgres.Close()
		},
	})
}
