package columnar

import (
	"io"
	"sync"

	"github.com/linkedin/goavro/v2"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
	jsonpool "github.com/ajitpratap0/arff/pkg/json"
)

// avroNamespace is the namespace of every exported record schema
const avroNamespace = "arff"

type avroField struct {
	Name    string        `json:"name"`
	Doc     string        `json:"doc,omitempty"`
	Type    []interface{} `json:"type"`
	Default interface{}   `json:"default"`
}

type avroRecordSchema struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Namespace string      `json:"namespace"`
	Doc       string      `json:"doc,omitempty"`
	Fields    []avroField `json:"fields"`
}

// avroWriter buffers BatchSize rows per OCF block
type avroWriter struct {
	plan           *columnPlan
	config         *WriterConfig
	ocfWriter      *goavro.OCFWriter
	buffer         []interface{}
	recordsWritten int64
	closed         bool
	mu             sync.Mutex
}

func newAvroWriter(w io.Writer, name string, plan *columnPlan, config *WriterConfig) (*avroWriter, error) {
	schema, err := avroSchema(name, plan)
	if err != nil {
		return nil, err
	}

	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeExport, "failed to create Avro codec")
	}

	ocfWriter, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Codec:           codec,
		CompressionName: avroCompression(config.Compression),
		MetaData:        map[string][]byte{MetadataRelation: []byte(name)},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeExport, "failed to create Avro writer")
	}

	return &avroWriter{
		plan:      plan,
		config:    config,
		ocfWriter: ocfWriter,
		buffer:    make([]interface{}, 0, config.BatchSize),
	}, nil
}

// avroSchema builds a record schema with one nullable field per column
func avroSchema(name string, plan *columnPlan) (string, error) {
	record := avroRecordSchema{
		Type:      "record",
		Name:      sanitizeName(name),
		Namespace: avroNamespace,
		Fields:    make([]avroField, len(plan.columns)),
	}
	if record.Name != name {
		record.Doc = name
	}

	for i, c := range plan.columns {
		field := avroField{Name: c.key, Type: []interface{}{"null", avroType(c.kind)}}
		if c.key != c.name {
			field.Doc = c.name
		}
		record.Fields[i] = field
	}

	schema, err := jsonpool.Marshal(record)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeExport, "failed to encode Avro schema")
	}
	return string(schema), nil
}

func avroType(kind columnKind) string {
	switch kind {
	case numericColumn:
		return "double"
	case labelColumn:
		return "string"
	default:
		return "int"
	}
}

func avroCompression(compression string) string {
	switch compression {
	case goavro.CompressionDeflateLabel:
		return goavro.CompressionDeflateLabel
	case goavro.CompressionSnappyLabel:
		return goavro.CompressionSnappyLabel
	default:
		return goavro.CompressionNullLabel
	}
}

func (aw *avroWriter) native(row *dataset.Row) (map[string]interface{}, error) {
	native := make(map[string]interface{}, len(aw.plan.columns))
	for i := range aw.plan.columns {
		c := &aw.plan.columns[i]
		v, ok, err := c.value(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			native[c.key] = nil
			continue
		}
		if c.kind == indexColumn {
			v = int32(v.(int))
		}
		native[c.key] = goavro.Union(avroType(c.kind), v)
	}
	return native, nil
}

func (aw *avroWriter) Write(row *dataset.Row) error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.closed {
		return errors.New(errors.ErrorTypeExport, "write to closed Avro writer")
	}
	if err := aw.plan.check(row); err != nil {
		return err
	}

	native, err := aw.native(row)
	if err != nil {
		return err
	}
	aw.buffer = append(aw.buffer, native)
	aw.recordsWritten++

	if len(aw.buffer) >= aw.config.BatchSize {
		return aw.flushBatch()
	}
	return nil
}

func (aw *avroWriter) flushBatch() error {
	if len(aw.buffer) == 0 {
		return nil
	}
	if err := aw.ocfWriter.Append(aw.buffer); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "failed to write Avro block")
	}
	aw.buffer = aw.buffer[:0]
	return nil
}

// Close writes the last block. OCF files need no trailer.
func (aw *avroWriter) Close() error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.closed {
		return nil
	}
	aw.closed = true
	return aw.flushBatch()
}

func (aw *avroWriter) Format() Format {
	return Avro
}

func (aw *avroWriter) RowsWritten() int64 {
	aw.mu.Lock()
	defer aw.mu.Unlock()
	return aw.recordsWritten
}
