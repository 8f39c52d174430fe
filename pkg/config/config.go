package config

import (
	"fmt"
	"strings"
)

// LoaderConfig is the configuration structure consumed by arff.Loader and
// the arff command. Tags cover yaml files, json files and viper
// (mapstructure) so every source decodes the same way.
type LoaderConfig struct {
	// Filename is the ARFF file to load
	Filename string `yaml:"filename" json:"filename" mapstructure:"filename"`
	// Batch materializes every row at load time instead of streaming them
	Batch bool `yaml:"batch" json:"batch" mapstructure:"batch"`
	// Compression of the input file (auto, none, gzip, zstd, lz4, s2)
	Compression string `yaml:"compression" json:"compression" mapstructure:"compression"`
	// MemoryMap reads uncompressed files through a memory mapping
	MemoryMap bool `yaml:"memory_map" json:"memory_map" mapstructure:"memory_map"`

	// Log configures the zap logger
	Log LogConfig `yaml:"log" json:"log" mapstructure:"log"`

	// Metrics configures prometheus collection
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`

	// Tracing configures OpenTelemetry spans
	Tracing TracingConfig `yaml:"tracing" json:"tracing" mapstructure:"tracing"`

	// Export configures conversion of a loaded relation to another format
	Export ExportConfig `yaml:"export" json:"export" mapstructure:"export"`
}

// LogConfig contains logging settings
type LogConfig struct {
	// Level sets logging verbosity (debug, info, warn, error)
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Encoding selects json or console output
	Encoding string `yaml:"encoding" json:"encoding" mapstructure:"encoding"`
	// Development enables colored levels and stack traces on errors
	Development bool `yaml:"development" json:"development" mapstructure:"development"`
}

// MetricsConfig contains metrics settings
type MetricsConfig struct {
	// Enabled activates prometheus counters for parsed rows and errors
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
}

// TracingConfig contains tracing settings
type TracingConfig struct {
	// Enabled installs a stdout span exporter
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	// ServiceName is reported on every span
	ServiceName string `yaml:"service_name" json:"service_name" mapstructure:"service_name"`
}

// ExportConfig contains export settings
type ExportConfig struct {
	// Format is arrow, avro or json
	Format string `yaml:"format" json:"format" mapstructure:"format"`
	// Output is the destination path, "-" for stdout
	Output string `yaml:"output" json:"output" mapstructure:"output"`
	// Compression is the avro block codec (null, deflate, snappy)
	Compression string `yaml:"compression" json:"compression" mapstructure:"compression"`
	// BatchSize is the number of rows per arrow record batch
	BatchSize int `yaml:"batch_size" json:"batch_size" mapstructure:"batch_size"`
	// IndexColumns adds the class index of every nominal attribute as an
	// extra column
	IndexColumns bool `yaml:"index_columns" json:"index_columns" mapstructure:"index_columns"`
}

var (
	compressionAlgorithms = []string{"auto", "none", "gzip", "zstd", "lz4", "s2"}
	exportFormats         = []string{"arrow", "avro", "json"}
	avroCodecs            = []string{"null", "deflate", "snappy"}
	logEncodings          = []string{"json", "console"}
)

// NewLoaderConfig creates a LoaderConfig with sensible defaults.
// Streaming mode, auto-detected compression, warn-level json logs.
func NewLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		Batch:       false,
		Compression: "auto",
		Log: LogConfig{
			Level:    "warn",
			Encoding: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "arff",
		},
		Export: ExportConfig{
			Format:      "json",
			Output:      "-",
			Compression: "null",
			BatchSize:   1024,
		},
	}
}

// Validate validates the configuration for correctness.
// Filename is not required here because library callers pass it to Load.
func (c *LoaderConfig) Validate() error {
	if !oneOf(c.Compression, compressionAlgorithms) {
		return fmt.Errorf("compression must be one of %s, got %q", strings.Join(compressionAlgorithms, ", "), c.Compression)
	}
	if c.Log.Encoding != "" && !oneOf(c.Log.Encoding, logEncodings) {
		return fmt.Errorf("log encoding must be one of %s, got %q", strings.Join(logEncodings, ", "), c.Log.Encoding)
	}
	if err := c.Export.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate validates the export section
func (e *ExportConfig) Validate() error {
	if !oneOf(e.Format, exportFormats) {
		return fmt.Errorf("export format must be one of %s, got %q", strings.Join(exportFormats, ", "), e.Format)
	}
	if !oneOf(e.Compression, avroCodecs) {
		return fmt.Errorf("export compression must be one of %s, got %q", strings.Join(avroCodecs, ", "), e.Compression)
	}
	if e.BatchSize <= 0 {
		return fmt.Errorf("export batch_size must be positive")
	}
	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}
