package metrics

// Config controls the metrics registry and its HTTP endpoint.
type Config struct {
	// Address the metrics server listens on, e.g. ":9090".
	Address string `yaml:"address" env:"METRICS_ADDRESS,overwrite"`

	// ServiceName is added as the "service" label to every series.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME,overwrite"`

	// EnableDefaultCollectors registers the Go, process and build info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS,overwrite"`
}

// DefaultConfig serves metrics on :9090 with the default collectors.
func DefaultConfig() Config {
	return Config{
		Address:                 ":9090",
		ServiceName:             "geoquery",
		EnableDefaultCollectors: true,
	}
}
