// Package columnar exports loaded ARFF relations to Arrow IPC, Avro OCF and
// line-delimited JSON
package columnar

import (
	"context"
	"io"
	"iter"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
)

// Format is an export format
type Format string

const (
	// Arrow is the Apache Arrow IPC file format
	Arrow Format = "arrow"
	// Avro is the Apache Avro object container format
	Avro Format = "avro"
	// JSON is line-delimited JSON, one object per row
	JSON Format = "json"
)

// Writer writes the rows of one relation
type Writer interface {
	// Write appends a row. The row must belong to the headers the writer was
	// created with.
	Write(row *dataset.Row) error
	// Close flushes buffered rows and finishes the output. It does not close
	// the underlying io.Writer.
	Close() error
	// Format returns the export format
	Format() Format
	// RowsWritten returns the number of rows accepted so far
	RowsWritten() int64
}

// RowSource is a relation whose rows can be pulled in order. Both
// *arff.Stream and *arff.Batch satisfy it.
type RowSource interface {
	Name() string
	Headers() *dataset.Headers
	Rows(ctx context.Context) iter.Seq2[*dataset.Row, error]
}

// WriterConfig configures export writers
type WriterConfig struct {
	Format Format
	// Compression is the Avro block codec (null, deflate, snappy)
	Compression string
	// BatchSize is the number of rows per Arrow record batch and Avro block
	BatchSize int
	// IndexColumns adds the class index of every nominal attribute as an
	// extra integer column
	IndexColumns bool
}

// DefaultWriterConfig returns default writer configuration
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		Format:      JSON,
		Compression: "null",
		BatchSize:   1024,
	}
}

// NewWriter creates a writer for a relation called name with the given
// headers
func NewWriter(w io.Writer, name string, headers *dataset.Headers, config *WriterConfig) (Writer, error) {
	if config == nil {
		config = DefaultWriterConfig()
	}
	cfg := *config
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultWriterConfig().BatchSize
	}
	config = &cfg

	plan, err := newColumnPlan(headers, config.IndexColumns)
	if err != nil {
		return nil, err
	}

	switch config.Format {
	case Arrow:
		return newArrowWriter(w, name, plan, config)
	case Avro:
		return newAvroWriter(w, name, plan, config)
	case JSON:
		return newJSONWriter(w, plan), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unsupported export format: %s", config.Format)
	}
}

// Export writes every row of src to w and returns the number of rows
// written
func Export(ctx context.Context, w io.Writer, src RowSource, config *WriterConfig) (int64, error) {
	writer, err := NewWriter(w, src.Name(), src.Headers(), config)
	if err != nil {
		return 0, err
	}

	for row, err := range src.Rows(ctx) {
		if err != nil {
			_ = writer.Close()
			return writer.RowsWritten(), err
		}
		if err := writer.Write(row); err != nil {
			_ = writer.Close()
			return writer.RowsWritten(), err
		}
	}
	if err := writer.Close(); err != nil {
		return writer.RowsWritten(), err
	}
	return writer.RowsWritten(), nil
}

// FormatInfo describes an export format
type FormatInfo struct {
	Format        Format
	Name          string
	Description   string
	FileExtension string
	MIMEType      string
}

// GetFormatInfo returns information about an export format
func GetFormatInfo(format Format) *FormatInfo {
	switch format {
	case Arrow:
		return &FormatInfo{
			Format:        Arrow,
			Name:          "Apache Arrow",
			Description:   "In-memory columnar format",
			FileExtension: ".arrow",
			MIMEType:      "application/vnd.apache.arrow.file",
		}
	case Avro:
		return &FormatInfo{
			Format:        Avro,
			Name:          "Apache Avro",
			Description:   "Row-oriented data serialization format",
			FileExtension: ".avro",
			MIMEType:      "application/avro",
		}
	case JSON:
		return &FormatInfo{
			Format:        JSON,
			Name:          "JSON Lines",
			Description:   "One JSON object per row",
			FileExtension: ".jsonl",
			MIMEType:      "application/jsonl",
		}
	default:
		return nil
	}
}
