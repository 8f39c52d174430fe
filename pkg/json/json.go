// Package json wraps goccy/go-json with pooled buffers and a streaming
// encoder for line-delimited and array output
package json

import (
	"bytes"
	"io"
	"sync"

	gojson "github.com/goccy/go-json"
)

// maxPooledBuffer is the largest buffer returned to the pool
const maxPooledBuffer = 1024 * 1024

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// GetBuffer gets a reset buffer from the pool
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}

// Marshal is a drop-in replacement for encoding/json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal is a drop-in replacement for encoding/json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// MarshalIndent is a drop-in replacement for encoding/json.MarshalIndent
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// NewEncoder returns an encoder for w that does not escape HTML
func NewEncoder(w io.Writer) *gojson.Encoder {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// StreamingEncoder writes a sequence of values either one per line or as
// the elements of a single JSON array
type StreamingEncoder struct {
	writer  io.Writer
	isArray bool
	pretty  bool
	indent  string
	count   int
	closed  bool
}

// NewStreamingEncoder creates a streaming encoder writing to w
func NewStreamingEncoder(w io.Writer, isArray bool) *StreamingEncoder {
	return &StreamingEncoder{writer: w, isArray: isArray}
}

// SetPretty enables indented output
func (se *StreamingEncoder) SetPretty(pretty bool, indent string) {
	se.pretty = pretty
	se.indent = indent
}

// Count returns the number of values encoded
func (se *StreamingEncoder) Count() int {
	return se.count
}

// Encode writes one value
func (se *StreamingEncoder) Encode(v interface{}) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	switch {
	case se.isArray && se.count == 0:
		buf.WriteByte('[')
	case se.isArray:
		buf.WriteByte(',')
	}
	if se.isArray && se.pretty {
		buf.WriteByte('\n')
	}

	enc := NewEncoder(buf)
	if se.pretty {
		enc.SetIndent("", se.indent)
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline. Array elements are
	// separated by commas instead.
	if se.isArray {
		buf.Truncate(buf.Len() - 1)
	}

	if _, err := se.writer.Write(buf.Bytes()); err != nil {
		return err
	}
	se.count++
	return nil
}

// Close terminates the array. It does not close the underlying writer.
func (se *StreamingEncoder) Close() error {
	if se.closed || !se.isArray {
		se.closed = true
		return nil
	}
	se.closed = true

	tail := "]\n"
	switch {
	case se.count == 0:
		tail = "[]\n"
	case se.pretty:
		tail = "\n]\n"
	}
	_, err := io.WriteString(se.writer, tail)
	return err
}
