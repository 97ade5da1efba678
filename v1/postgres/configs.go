package postgres

import (
	"fmt"
	"time"
)

// Config holds the connection settings for PostgreSQL.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection identifies the database server and credentials.
type Connection struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST,overwrite"`
	Port     string `yaml:"port" env:"POSTGRES_PORT,overwrite"`
	User     string `yaml:"user" env:"POSTGRES_USER,overwrite"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD,overwrite"`
	DbName   string `yaml:"db_name" env:"POSTGRES_DB,overwrite"`
	SSLMode  string `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE,overwrite"`
}

// ConnectionDetails tunes the connection pool and the health monitor.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" env:"POSTGRES_MAX_OPEN_CONNS,overwrite"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"POSTGRES_MAX_IDLE_CONNS,overwrite"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"POSTGRES_CONN_MAX_LIFETIME,overwrite"`

	// HealthCheckInterval is the period of MonitorConnection.
	HealthCheckInterval time.Duration `yaml:"health_check_interval" env:"POSTGRES_HEALTH_CHECK_INTERVAL,overwrite"`
}

// DefaultConfig points at a local database named hdbData.
func DefaultConfig() Config {
	return Config{
		Connection: Connection{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			DbName:  "hdbData",
			SSLMode: "disable",
		},
		ConnectionDetails: ConnectionDetails{
			MaxOpenConns:        50,
			MaxIdleConns:        25,
			ConnMaxLifetime:     time.Minute,
			HealthCheckInterval: 10 * time.Second,
		},
	}
}

// DSN renders the connection as a libpq keyword/value string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.User,
		c.Connection.Password,
		c.Connection.DbName,
		c.Connection.SSLMode)
}
