package columnar

import (
	"io"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
	jsonpool "github.com/ajitpratap0/arff/pkg/json"
)

// Schema metadata keys
const (
	// MetadataRelation holds the relation name
	MetadataRelation = "arff.relation"
	// MetadataClasses holds the JSON-encoded classes of a nominal field
	MetadataClasses = "arff.classes"
)

// arrowWriter writes record batches of BatchSize rows to an IPC file
type arrowWriter struct {
	plan           *columnPlan
	config         *WriterConfig
	schema         *arrow.Schema
	fileWriter     *ipc.FileWriter
	recordBuilder  *array.RecordBuilder
	currentBatch   int
	recordsWritten int64
	closed         bool
	mu             sync.Mutex
}

func newArrowWriter(w io.Writer, name string, plan *columnPlan, config *WriterConfig) (*arrowWriter, error) {
	schema, err := arrowSchema(name, plan)
	if err != nil {
		return nil, err
	}

	mem := memory.NewGoAllocator()
	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeExport, "failed to create Arrow writer")
	}

	return &arrowWriter{
		plan:          plan,
		config:        config,
		schema:        schema,
		fileWriter:    fw,
		recordBuilder: array.NewRecordBuilder(mem, schema),
	}, nil
}

// arrowSchema maps numeric columns to float64, labels to utf8 and class
// indexes to int32. Every field is nullable.
func arrowSchema(name string, plan *columnPlan) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(plan.columns))
	for i, c := range plan.columns {
		field := arrow.Field{Name: c.name, Nullable: true}
		switch c.kind {
		case numericColumn:
			field.Type = arrow.PrimitiveTypes.Float64
		case labelColumn:
			field.Type = arrow.BinaryTypes.String
			nominal := plan.headers.MustAt(c.attr).Type().(*dataset.Nominal)
			classes, err := jsonpool.Marshal(nominal.Classes())
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeExport, "failed to encode nominal classes")
			}
			field.Metadata = arrow.NewMetadata([]string{MetadataClasses}, []string{string(classes)})
		case indexColumn:
			field.Type = arrow.PrimitiveTypes.Int32
		}
		fields[i] = field
	}
	md := arrow.NewMetadata([]string{MetadataRelation}, []string{name})
	return arrow.NewSchema(fields, &md), nil
}

func (aw *arrowWriter) Write(row *dataset.Row) error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.closed {
		return errors.New(errors.ErrorTypeExport, "write to closed Arrow writer")
	}
	if err := aw.plan.check(row); err != nil {
		return err
	}

	for i := range aw.plan.columns {
		if err := aw.appendValue(i, row); err != nil {
			return err
		}
	}
	aw.currentBatch++
	aw.recordsWritten++

	if aw.currentBatch >= aw.config.BatchSize {
		return aw.flushBatch()
	}
	return nil
}

func (aw *arrowWriter) appendValue(i int, row *dataset.Row) error {
	c := &aw.plan.columns[i]
	builder := aw.recordBuilder.Field(i)

	v, ok, err := c.value(row)
	if err != nil {
		return err
	}
	if !ok {
		builder.AppendNull()
		return nil
	}

	switch b := builder.(type) {
	case *array.Float64Builder:
		b.Append(v.(float64))
	case *array.StringBuilder:
		b.Append(v.(string))
	case *array.Int32Builder:
		b.Append(int32(v.(int)))
	default:
		return errors.Newf(errors.ErrorTypeInternal, "unsupported builder type: %T", builder)
	}
	return nil
}

func (aw *arrowWriter) flushBatch() error {
	if aw.currentBatch == 0 {
		return nil
	}

	record := aw.recordBuilder.NewRecord()
	defer record.Release()

	if err := aw.fileWriter.Write(record); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "failed to write Arrow record batch")
	}
	aw.currentBatch = 0
	return nil
}

func (aw *arrowWriter) Close() error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.closed {
		return nil
	}
	aw.closed = true
	defer aw.recordBuilder.Release()

	if err := aw.flushBatch(); err != nil {
		return err
	}
	if err := aw.fileWriter.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "failed to close Arrow writer")
	}
	return nil
}

func (aw *arrowWriter) Format() Format {
	return Arrow
}

func (aw *arrowWriter) RowsWritten() int64 {
	aw.mu.Lock()
	defer aw.mu.Unlock()
	return aw.recordsWritten
}
