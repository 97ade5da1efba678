package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/logger"
	"github.com/hdbmap/geoquery/v1/recordsource"
	"github.com/hdbmap/geoquery/v1/resale"
)

const seed = `{
  "cleanedResale": [
    {"_id": "r1", "town": "BISHAN", "flat_type": "4 ROOM", "Psf": 500, "date": "2021-01"},
    {"_id": "r2", "town": "YISHUN", "flat_type": "5 ROOM", "Psf": 350, "date": "2021-03-01"}
  ],
  "listingsData": [
    {"_id": "l1", "town": "BISHAN", "Psf": 700}
  ]
}`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))
	return path
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{Kind: KindMemory}.Validate())
	assert.Error(t, Config{Kind: "sqlite"}.Validate())
}

func TestModule_Memory(t *testing.T) {
	var source recordsource.Source

	cfg := Config{Kind: KindMemory, SeedFile: writeSeed(t)}

	app := fxtest.New(t,
		fx.Supply(cfg, resale.DefaultConfig()),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		Module(cfg),
		fx.Populate(&source),
	)
	app.RequireStart()
	defer app.RequireStop()

	ctx := context.Background()
	pred, err := filters.NewPredicate(filters.Entry{Field: "Psf", Condition: filters.Comparison{Gte: 400.0}})
	require.NoError(t, err)

	docs, err := source.FindMany(ctx, "cleanedResale", pred, recordsource.FindOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "r1", docs[0]["_id"])
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), docs[0]["date"])

	doc, err := source.FindOne(ctx, "listingsData", "l1")
	require.NoError(t, err)
	assert.Equal(t, 700.0, doc["Psf"])
}

func TestModule_MemoryMissingSeed(t *testing.T) {
	var source recordsource.Source

	cfg := Config{Kind: KindMemory, SeedFile: filepath.Join(t.TempDir(), "missing.json")}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, resale.DefaultConfig()),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		Module(cfg),
		fx.Populate(&source),
	)
	assert.Error(t, app.Err())
}
