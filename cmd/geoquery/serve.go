package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/hdbmap/geoquery/v1/backend"
	"github.com/hdbmap/geoquery/v1/config"
	"github.com/hdbmap/geoquery/v1/httpapi"
	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/metrics"
	"github.com/hdbmap/geoquery/v1/resale"
	"github.com/hdbmap/geoquery/v1/tracer"
)

// appOptions wires every component for cfg.
func appOptions(cfg config.Config) fx.Option {
	return fx.Options(
		cfg.Supply(),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		backend.Module(cfg.Backend),
		resale.FXModule,
		httpapi.FXModule,
	)
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			app := fx.New(appOptions(cfg), fx.NopLogger)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}
