package backend

import "fmt"

// Kinds of record source.
const (
	KindMongo    = "mongo"
	KindPostgres = "postgres"
	KindMemory   = "memory"
)

// Config selects the record source.
type Config struct {
	// Kind is one of KindMongo, KindPostgres or KindMemory.
	Kind string `yaml:"kind" env:"BACKEND_KIND,overwrite"`

	// SeedFile seeds the in-memory store. It holds a JSON object mapping
	// collection names to arrays of documents.
	SeedFile string `yaml:"seed_file" env:"BACKEND_SEED_FILE,overwrite"`
}

// DefaultConfig reads from MongoDB.
func DefaultConfig() Config {
	return Config{Kind: KindMongo}
}

// Validate checks Kind.
func (c Config) Validate() error {
	switch c.Kind {
	case KindMongo, KindPostgres, KindMemory:
		return nil
	default:
		return fmt.Errorf("unknown backend %q, want %s, %s or %s", c.Kind, KindMongo, KindPostgres, KindMemory)
	}
}
