package httpapi

import "time"

// Config holds the listener settings.
type Config struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS,overwrite"`

	// RequestTimeout bounds each request's work against the record source.
	RequestTimeout    time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT,overwrite"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT,overwrite"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT,overwrite"`

	// MaxBodyBytes caps search request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES,overwrite"`
}

// DefaultConfig listens on :8080.
func DefaultConfig() Config {
	return Config{
		Address:           ":8080",
		RequestTimeout:    10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxBodyBytes:      1 << 20,
	}
}
