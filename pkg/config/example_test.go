package config_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/arff/pkg/config"
)

// ExampleNewLoaderConfig demonstrates creating a new loader configuration
// with default values.
func ExampleNewLoaderConfig() {
	cfg := config.NewLoaderConfig()

	fmt.Printf("Batch: %v\n", cfg.Batch)
	fmt.Printf("Compression: %s\n", cfg.Compression)
	fmt.Printf("Export Format: %s\n", cfg.Export.Format)

	// Output:
	// Batch: false
	// Compression: auto
	// Export Format: json
}

// ExampleLoaderConfig_Validate shows how to validate a configuration
// before using it.
func ExampleLoaderConfig_Validate() {
	cfg := config.NewLoaderConfig()
	cfg.Filename = "iris.arff"
	cfg.Batch = true
	cfg.Export.Format = "arrow"

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fmt.Println("Configuration is valid!")

	// Output:
	// Configuration is valid!
}

// ExampleParse demonstrates decoding YAML with environment variable
// substitution.
func ExampleParse() {
	cfg := config.NewLoaderConfig()

	yamlContent := []byte(`
filename: weather.arff
batch: true
export:
  format: avro
  compression: deflate
`)

	if err := config.Parse(yamlContent, cfg); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s batch=%v export=%s/%s\n", cfg.Filename, cfg.Batch, cfg.Export.Format, cfg.Export.Compression)

	// Output:
	// weather.arff batch=true export=avro/deflate
}
