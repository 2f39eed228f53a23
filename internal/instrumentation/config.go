package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter types.
const (
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: mailpurge)
	ServiceName string

	// ServiceVersion is the version of the binary
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: false)
	// Set INSTRUMENTATION_ENABLED=true to record and export run metrics.
	Enabled bool

	// MetricsExporter specifies the metrics exporter type.
	// Options: "stdout", "none" (default: "stdout")
	MetricsExporter string
}

// DefaultConfig returns a Config with defaults based on environment
// variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "mailpurge"),
		ServiceVersion:  "unknown",
		Enabled:         getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", false),
		MetricsExporter: getEnvOrDefault("METRICS_EXPORTER", ExporterStdout),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	valid := map[string]bool{ExporterStdout: true, ExporterNone: true}
	if c.MetricsExporter != "" && !valid[c.MetricsExporter] {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: stdout, none", c.MetricsExporter)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}
