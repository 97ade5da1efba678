package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"

	"github.com/hdbmap/geoquery/v1/backend"
	"github.com/hdbmap/geoquery/v1/filters"
)

// Load returns Default overlaid with the YAML file at path, if any, and the
// process environment.
func Load(ctx context.Context, path string) (Config, error) {
	return LoadWith(ctx, path, envconfig.OsLookuper())
}

// LoadWith is Load reading the environment from lookuper.
func LoadWith(ctx context.Context, path string, lookuper envconfig.Lookuper) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	if err := envconfig.ProcessWith(ctx, &cfg, lookuper); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error

	if err := c.Backend.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := filters.ParseUnknownFieldPolicy(c.Resale.UnknownFields); err != nil {
		errs = append(errs, err)
	}
	if c.Resale.RecordsCollection == "" || c.Resale.ListingsCollection == "" {
		errs = append(errs, errors.New("resale collections must be named"))
	}
	if c.Resale.DefaultRecordsLimit < 0 || c.Resale.DefaultListingsLimit < 0 {
		errs = append(errs, errors.New("resale default limits must not be negative"))
	}
	if c.HTTP.Address == "" {
		errs = append(errs, errors.New("http address is required"))
	}

	switch c.Backend.Kind {
	case backend.KindMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("mongo uri and database are required"))
		}
	case backend.KindPostgres:
		if c.Postgres.Connection.Host == "" || c.Postgres.Connection.DbName == "" {
			errs = append(errs, errors.New("postgres host and database are required"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Supply puts each component's configuration into the fx container.
func (c Config) Supply() fx.Option {
	return fx.Supply(
		c.Logger,
		c.Metrics,
		c.Tracer,
		c.Backend,
		c.Mongo,
		c.Postgres,
		c.HTTP,
		c.Resale,
	)
}
