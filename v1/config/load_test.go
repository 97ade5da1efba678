package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdbmap/geoquery/v1/backend"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geoquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "geoquery", cfg.Logger.ServiceName)
	assert.Equal(t, backend.KindMongo, cfg.Backend.Kind)
	assert.Equal(t, "hdbData", cfg.Mongo.Database)
	assert.Equal(t, "cleanedResale", cfg.Resale.RecordsCollection)
	assert.Equal(t, 300, cfg.Resale.DefaultRecordsLimit)
}

func TestLoadWith_FileThenEnvironment(t *testing.T) {
	path := writeFile(t, `
backend:
  kind: postgres
postgres:
  connection:
    host: db.internal
    db_name: hdb
http:
  address: ":9000"
  request_timeout: 3s
resale:
  default_listings_limit: 50
`)
	env := envconfig.MapLookuper(map[string]string{
		"HTTP_ADDRESS":          ":9100",
		"RESALE_UNKNOWN_FIELDS": "pass",
	})

	cfg, err := LoadWith(context.Background(), path, env)
	require.NoError(t, err)

	assert.Equal(t, backend.KindPostgres, cfg.Backend.Kind)
	assert.Equal(t, "db.internal", cfg.Postgres.Connection.Host)
	assert.Equal(t, "5432", cfg.Postgres.Connection.Port)
	assert.Equal(t, ":9100", cfg.HTTP.Address)
	assert.Equal(t, 3*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 50, cfg.Resale.DefaultListingsLimit)
	assert.Equal(t, 300, cfg.Resale.DefaultRecordsLimit)
	assert.Equal(t, "pass", cfg.Resale.UnknownFields)
}

func TestLoadWith_NoFile(t *testing.T) {
	cfg, err := LoadWith(context.Background(), "", envconfig.MapLookuper(map[string]string{
		"BACKEND_KIND":      "memory",
		"BACKEND_SEED_FILE": "/data/seed.json",
	}))
	require.NoError(t, err)
	assert.Equal(t, backend.KindMemory, cfg.Backend.Kind)
	assert.Equal(t, "/data/seed.json", cfg.Backend.SeedFile)
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"UnknownBackend", map[string]string{"BACKEND_KIND": "sqlite"}},
		{"UnknownPolicy", map[string]string{"RESALE_UNKNOWN_FIELDS": "ignore"}},
		{"NegativeLimit", map[string]string{"RESALE_DEFAULT_RECORDS_LIMIT": "-1"}},
		{"BadDuration", map[string]string{"HTTP_REQUEST_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), "", envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadWith_MissingFile(t *testing.T) {
	_, err := LoadWith(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), envconfig.MapLookuper(nil))
	assert.Error(t, err)
}
