package main

import (
	"github.com/spf13/cobra"

	"github.com/hdbmap/geoquery/v1/config"
	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/postgres"
	"github.com/hdbmap/geoquery/v1/resale"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the PostgreSQL tables of both collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			log := logger.NewLoggerClient(cfg.Logger)
			defer func() { _ = log.Zap.Sync() }()

			pg, err := postgres.NewPostgres(cfg.Postgres, log)
			if err != nil {
				log.Error("Failed to connect to PostgreSQL", err, nil)
				return err
			}
			defer pg.Close()

			return pg.Migrate(cmd.Context(), resale.Tables(cfg.Resale))
		},
	}
}
