package resale

import (
	"go.uber.org/fx"

	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/recordsource"
	"github.com/hdbmap/geoquery/v1/tracer"
)

// FXModule provides *Service. It needs a resale.Config, a
// recordsource.Source, a logger.Logger and a *tracer.Tracer.
var FXModule = fx.Module("resale",
	fx.Provide(NewServiceWithDI),
)

// ServiceParams groups the dependencies of NewServiceWithDI.
type ServiceParams struct {
	fx.In

	Config Config
	Source recordsource.Source
	Logger logger.Logger
	Tracer *tracer.Tracer
}

// NewServiceWithDI builds the service from the container.
func NewServiceWithDI(params ServiceParams) (*Service, error) {
	return NewService(params.Source, params.Config, params.Logger, params.Tracer)
}
