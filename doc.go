// Package arff loads relations stored in the Attribute-Relation File Format
// (ARFF) into typed, multi-representation rows.
//
// An ARFF file declares a relation name and an ordered list of numeric and
// nominal attributes, followed by one comma- or tab-separated data line per
// instance. Every value materializes once into all of its representations:
// a numeric value is a float64; a nominal value is its label, its class
// index, a one-hot vector and a big-integer entropic code. Representations
// are capability tokens obtained from the header that owns them, so a value
// can only be read through headers of the same load.
//
// # Quick Start
//
// Load a relation in batch mode and read a column:
//
//	import (
//	    "context"
//	    "github.com/ajitpratap0/arff/pkg/arff"
//	)
//
//	ds, err := arff.Load(context.Background(), "iris.arff", true)
//	if err != nil {
//	    return err
//	}
//	batch := ds.(*arff.Batch)
//
//	class := batch.Headers().MustAt(4)
//	labels, _ := class.LabelRep()
//	values, valid, err := arff.Column(batch, labels)
//
// Stream a large, compressed file one row at a time:
//
//	ds, err := arff.Load(ctx, "census.arff.zst", false)
//	defer ds.Close()
//	for row, err := range ds.Rows(ctx) {
//	    ...
//	}
//
// # Key Packages
//
//	pkg/arff              - Tokenizer, header and data parsers, Stream and Batch
//	pkg/dataset           - Attribute types, frozen headers, rows and representations
//	pkg/compression       - gzip, zstd, lz4 and s2 readers and writers
//	pkg/formats/columnar  - Arrow IPC, Avro OCF and JSON lines export
//	pkg/config            - Loader configuration from YAML, env and viper
//	pkg/errors            - Structured errors with a parse-error taxonomy
//	pkg/logger            - Structured logging with zap
//	pkg/metrics           - Prometheus counters for rows, skipped lines and errors
//	pkg/observability     - OpenTelemetry spans around loads
//	pkg/mmap              - Memory-mapped line reading for uncompressed files
//
// # Command Line
//
// The arff command inspects and converts relations:
//
//	arff inspect iris.arff
//	arff head -n 5 iris.arff.gz
//	arff export iris.arff --format arrow -o iris.arrow
//
// # Configuration
//
// Settings come from a YAML file, ARFF_* environment variables and flags:
//
//	type LoaderConfig struct {
//	    Filename    string        // File to load
//	    Batch       bool          // Materialize every row at load time
//	    Compression string        // auto, none, gzip, zstd, lz4, s2
//	    MemoryMap   bool          // mmap uncompressed inputs
//	    Log         LogConfig     // Level, encoding
//	    Metrics     MetricsConfig // Prometheus counters
//	    Tracing     TracingConfig // stdout span exporter
//	    Export      ExportConfig  // Format, output, codec, batch size
//	}
//
// Environment variables are supported in YAML files with ${VAR_NAME} syntax.
package arff
