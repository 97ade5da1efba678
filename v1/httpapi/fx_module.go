package httpapi

import (
	"context"

	"go.uber.org/fx"

	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/metrics"
	"github.com/hdbmap/geoquery/v1/resale"
	"github.com/hdbmap/geoquery/v1/tracer"
)

// FXModule provides *Server and runs it for the application's lifetime.
// It needs an httpapi.Config, a *resale.Service and a logger.Logger; metrics,
// tracer and a HealthChecker are used when present.
var FXModule = fx.Module("httpapi",
	fx.Provide(NewServerWithDI),
	fx.Invoke(RegisterServerLifecycle),
)

// ServerParams groups the dependencies of NewServerWithDI.
type ServerParams struct {
	fx.In

	Config  Config
	Service *resale.Service
	Logger  logger.Logger
	Metrics metrics.MetricsCollector `optional:"true"`
	Tracer  *tracer.Tracer           `optional:"true"`
	Health  HealthChecker            `optional:"true"`
}

// NewServerWithDI builds the server from the container.
func NewServerWithDI(params ServerParams) *Server {
	var opts []Option
	if params.Metrics != nil {
		opts = append(opts, WithMetrics(params.Metrics))
	}
	if params.Tracer != nil {
		opts = append(opts, WithPropagator(params.Tracer))
	}
	if params.Health != nil {
		opts = append(opts, WithHealthChecker(params.Health))
	}
	return NewServer(params.Config, params.Service, params.Logger, opts...)
}

// RegisterServerLifecycle starts listening on start and drains on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, server *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			server.logger.Info("Stopping HTTP API", nil, nil)
			return server.Shutdown(ctx)
		},
	})
}
