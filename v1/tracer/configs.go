package tracer

// Config describes the tracer provider.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME,overwrite"`

	// AppEnv is reported as the deployment environment.
	AppEnv string `yaml:"app_env" env:"TRACER_APP_ENV,overwrite"`

	// EnableExport sends spans to an OTLP/HTTP collector.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT,overwrite"`

	// Endpoint is the collector host:port. Empty uses the exporter's
	// environment defaults.
	Endpoint string `yaml:"endpoint" env:"TRACER_ENDPOINT,overwrite"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" env:"TRACER_INSECURE,overwrite"`
}

// DefaultConfig traces without exporting.
func DefaultConfig() Config {
	return Config{
		ServiceName: "geoquery",
		AppEnv:      "development",
	}
}
