package mongo

import (
	"time"
)

// Config holds connection settings for the MongoDB client.
//
// Example (builder style):
//
//	cfg := mongo.DefaultConfig().
//	    WithURI("mongodb://db:27017").
//	    WithDatabase("hdbData")
type Config struct {
	// URI is the MongoDB connection string.
	URI string `yaml:"uri" env:"MONGO_URI,overwrite"`

	// Database holds the resale and listing collections.
	Database string `yaml:"database" env:"MONGO_DATABASE,overwrite"`

	// AppName is reported to the server for diagnostics.
	AppName string `yaml:"app_name" env:"MONGO_APP_NAME,overwrite"`

	// ConnectTimeout bounds establishing a connection.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT,overwrite"`

	// ServerSelectionTimeout bounds finding a usable server for an operation.
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" env:"MONGO_SERVER_SELECTION_TIMEOUT,overwrite"`

	// HealthCheckTimeout bounds the ping issued by HealthCheck.
	HealthCheckTimeout time.Duration `yaml:"health_check_timeout" env:"MONGO_HEALTH_CHECK_TIMEOUT,overwrite"`

	// MaxPoolSize caps open connections per server.
	MaxPoolSize uint64 `yaml:"max_pool_size" env:"MONGO_MAX_POOL_SIZE,overwrite"`
}

// DefaultConfig provides defaults for a local deployment.
func DefaultConfig() Config {
	return Config{
		URI:                    "mongodb://localhost:27017",
		Database:               "hdbData",
		AppName:                "geoquery",
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		HealthCheckTimeout:     5 * time.Second,
		MaxPoolSize:            100,
	}
}

// WithURI sets the connection string.
func (c Config) WithURI(uri string) Config {
	c.URI = uri
	return c
}

// WithDatabase sets the database name.
func (c Config) WithDatabase(name string) Config {
	c.Database = name
	return c
}

// WithTimeouts sets the connect and server selection timeouts.
func (c Config) WithTimeouts(connect, serverSelection time.Duration) Config {
	c.ConnectTimeout = connect
	c.ServerSelectionTimeout = serverSelection
	return c
}
