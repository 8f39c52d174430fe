// Package config provides configuration management for the ARFF loader.
//
// # Key Features
//
// - LoaderConfig: one structure shared by the library loader and the CLI
// - Sections: Log, Metrics, Tracing, Export
// - Environment variable substitution with ${VAR_NAME} syntax in YAML files
// - ARFF_* environment overrides and flag binding through viper
// - Automatic defaults and validation
//
// # Usage
//
// ## Basic Configuration Loading
//
//	cfg := config.NewLoaderConfig()
//	if err := config.Load("arff.yaml", cfg); err != nil {
//		log.Fatal(err)
//	}
//
// ## Environment Variable Substitution
//
//	# arff.yaml
//	filename: ${DATA_DIR}/iris.arff
//	batch: true
//	export:
//	  format: arrow
//	  output: ${DATA_DIR}/iris.arrow
//
// ## Viper
//
//	v, err := config.NewViper("arff.yaml")
//	v.Set("batch", true) // e.g. from a bound flag
//	cfg, err := config.FromViper(v)
package config
