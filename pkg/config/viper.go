package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by NewViper,
// e.g. ARFF_LOG_LEVEL or ARFF_EXPORT_FORMAT.
const EnvPrefix = "ARFF"

// NewViper returns a viper instance primed with the LoaderConfig defaults
// and bound to ARFF_* environment variables. An empty configFile skips
// reading a file.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v, NewLoaderConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	return v, nil
}

// SetDefaults registers every key of cfg as a viper default. Viper only
// resolves environment overrides for keys it knows about.
func SetDefaults(v *viper.Viper, cfg *LoaderConfig) {
	v.SetDefault("filename", cfg.Filename)
	v.SetDefault("batch", cfg.Batch)
	v.SetDefault("compression", cfg.Compression)
	v.SetDefault("memory_map", cfg.MemoryMap)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.encoding", cfg.Log.Encoding)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("tracing.enabled", cfg.Tracing.Enabled)
	v.SetDefault("tracing.service_name", cfg.Tracing.ServiceName)
	v.SetDefault("export.format", cfg.Export.Format)
	v.SetDefault("export.output", cfg.Export.Output)
	v.SetDefault("export.compression", cfg.Export.Compression)
	v.SetDefault("export.batch_size", cfg.Export.BatchSize)
	v.SetDefault("export.index_columns", cfg.Export.IndexColumns)
}

// FromViper decodes and validates a LoaderConfig from v
func FromViper(v *viper.Viper) (*LoaderConfig, error) {
	cfg := NewLoaderConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
