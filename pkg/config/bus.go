package config

// BusConfig is the on-disk configuration schema for a bus and its
// observability wiring. Load it with LoadYAML or LoadJSON; missing fields
// keep their zero values, so callers usually start from DefaultBusConfig.
type BusConfig struct {
	// PendingCapacity preallocates the deferred-message queue.
	PendingCapacity int `yaml:"pending_capacity" json:"pending_capacity"`

	Log     LogConfig     `yaml:"log" json:"log"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Tracing TracingConfig `yaml:"tracing" json:"tracing"`
}

// LogConfig configures the bus logger.
type LogConfig struct {
	// Level is the minimum log level (DEBUG, INFO, ERROR).
	Level string `yaml:"level" json:"level"`

	// JSON enables JSON structured output.
	JSON bool `yaml:"json" json:"json"`
}

// MetricsConfig configures prometheus metrics export.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Namespace prefixes every exported metric name.
	Namespace string `yaml:"namespace" json:"namespace"`

	// Path is the scrape endpoint path.
	Path string `yaml:"path" json:"path"`

	// Listen is the address the scrape endpoint binds to.
	Listen string `yaml:"listen" json:"listen"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	ServiceName    string `yaml:"service_name" json:"service_name"`
	ServiceVersion string `yaml:"service_version" json:"service_version"`

	// Exporter is the span exporter type: "jaeger", "zipkin", "stdout",
	// "none".
	Exporter string `yaml:"exporter" json:"exporter"`

	// Endpoint is the exporter endpoint URL; empty selects the exporter's
	// default.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" json:"sample_rate"`
}

// DefaultBusConfig returns the defaults used when no file overrides them.
func DefaultBusConfig() BusConfig {
	return BusConfig{
		PendingCapacity: 16,
		Log: LogConfig{
			Level: "INFO",
		},
		Metrics: MetricsConfig{
			Namespace: "typebus",
			Path:      "/metrics",
			Listen:    ":9100",
		},
		Tracing: TracingConfig{
			ServiceName:    "typebus",
			ServiceVersion: "1.0.0",
			Exporter:       "stdout",
			SampleRate:     1.0,
		},
	}
}
