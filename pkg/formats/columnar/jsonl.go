package columnar

import (
	"bytes"
	"io"
	"sync"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
	jsonpool "github.com/ajitpratap0/arff/pkg/json"
)

// jsonWriter writes one object per row with keys in attribute order
type jsonWriter struct {
	plan    *columnPlan
	encoder *jsonpool.StreamingEncoder
	keys    [][]byte
	closed  bool
	mu      sync.Mutex
}

func newJSONWriter(w io.Writer, plan *columnPlan) *jsonWriter {
	keys := make([][]byte, len(plan.columns))
	for i, c := range plan.columns {
		// marshalling a string never fails
		keys[i], _ = jsonpool.Marshal(c.key)
	}
	return &jsonWriter{
		plan:    plan,
		encoder: jsonpool.NewStreamingEncoder(w, false),
		keys:    keys,
	}
}

// orderedRow is a pre-rendered JSON object
type orderedRow []byte

func (r orderedRow) MarshalJSON() ([]byte, error) {
	return r, nil
}

func (jw *jsonWriter) render(row *dataset.Row) (orderedRow, error) {
	buf := jsonpool.GetBuffer()
	defer jsonpool.PutBuffer(buf)

	buf.WriteByte('{')
	for i := range jw.plan.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(jw.keys[i])
		buf.WriteByte(':')

		v, ok, err := jw.plan.columns[i].value(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			buf.WriteString("null")
			continue
		}
		data, err := jsonpool.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeExport, "failed to encode value")
		}
		buf.Write(data)
	}
	buf.WriteByte('}')

	return orderedRow(bytes.Clone(buf.Bytes())), nil
}

func (jw *jsonWriter) Write(row *dataset.Row) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.closed {
		return errors.New(errors.ErrorTypeExport, "write to closed JSON writer")
	}
	if err := jw.plan.check(row); err != nil {
		return err
	}

	obj, err := jw.render(row)
	if err != nil {
		return err
	}
	if err := jw.encoder.Encode(obj); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "failed to write JSON row")
	}
	return nil
}

func (jw *jsonWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	jw.closed = true
	return jw.encoder.Close()
}

func (jw *jsonWriter) Format() Format {
	return JSON
}

func (jw *jsonWriter) RowsWritten() int64 {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	return int64(jw.encoder.Count())
}
