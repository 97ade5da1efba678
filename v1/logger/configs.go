package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// 1. production -> INFO
	// 2. development -> DEBUG
	// else -> INFO
	Level string `yaml:"level" env:"LOGGER_LEVEL,overwrite"`

	// ServiceName is attached to every entry as "service".
	ServiceName string `yaml:"service_name" env:"LOGGER_SERVICE_NAME,overwrite"`

	// EnableTracing adds trace_id and span_id to *WithContext entries.
	EnableTracing bool `yaml:"enable_tracing" env:"LOGGER_ENABLE_TRACING,overwrite"`
}

// DefaultConfig logs at info level with tracing correlation enabled.
func DefaultConfig() Config {
	return Config{
		Level:         Info,
		ServiceName:   "geoquery",
		EnableTracing: true,
	}
}
