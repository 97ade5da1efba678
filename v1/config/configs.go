package config

import (
	"github.com/hdbmap/geoquery/v1/backend"
	"github.com/hdbmap/geoquery/v1/httpapi"
	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/metrics"
	"github.com/hdbmap/geoquery/v1/mongo"
	"github.com/hdbmap/geoquery/v1/postgres"
	"github.com/hdbmap/geoquery/v1/resale"
	"github.com/hdbmap/geoquery/v1/tracer"
)

const serviceName = "geoquery"

// Config aggregates the configuration of every component.
type Config struct {
	Logger   logger.Config   `yaml:"logger"`
	Metrics  metrics.Config  `yaml:"metrics"`
	Tracer   tracer.Config   `yaml:"tracer"`
	Backend  backend.Config  `yaml:"backend"`
	Mongo    mongo.Config    `yaml:"mongo"`
	Postgres postgres.Config `yaml:"postgres"`
	HTTP     httpapi.Config  `yaml:"http"`
	Resale   resale.Config   `yaml:"resale"`
}

// Default returns every component's defaults under one service name.
func Default() Config {
	cfg := Config{
		Logger:   logger.DefaultConfig(),
		Metrics:  metrics.DefaultConfig(),
		Tracer:   tracer.DefaultConfig(),
		Backend:  backend.DefaultConfig(),
		Mongo:    mongo.DefaultConfig(),
		Postgres: postgres.DefaultConfig(),
		HTTP:     httpapi.DefaultConfig(),
		Resale:   resale.DefaultConfig(),
	}
	cfg.Logger.ServiceName = serviceName
	cfg.Metrics.ServiceName = serviceName
	cfg.Tracer.ServiceName = serviceName
	return cfg
}
