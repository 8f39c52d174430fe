package arff

import (
	"bufio"
	"io"
	"os"

	"github.com/ajitpratap0/arff/pkg/compression"
	"github.com/ajitpratap0/arff/pkg/errors"
	"github.com/ajitpratap0/arff/pkg/mmap"
)

// MaxLineSize is the longest line a LineSource accepts
const MaxLineSize = 1 << 20

// LineSource yields the raw lines of an ARFF input one at a time.
// A source closes itself once exhausted; Close is idempotent.
type LineSource interface {
	// Next returns the next line without its line terminator, or false
	// once the input is exhausted or failed
	Next() (string, bool)
	// Err returns the read error that stopped Next, if any
	Err() error
	// LineNumber is the 1-based number of the line last returned by Next
	LineNumber() int
	Close() error
}

type readerLineSource struct {
	scanner *bufio.Scanner
	closers []io.Closer
	line    int
	err     error
	closed  bool
}

// NewReaderLineSource reads lines from r. Closing the source does not
// close r.
func NewReaderLineSource(r io.Reader) LineSource {
	return newReaderLineSource(r)
}

func newReaderLineSource(r io.Reader, closers ...io.Closer) *readerLineSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &readerLineSource{scanner: scanner, closers: closers}
}

// OpenFile opens path for reading, decompressing it with algorithm.
// compression.Auto picks the algorithm from the file extension.
func OpenFile(path string, algorithm compression.Algorithm) (LineSource, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open ARFF file").
			WithDetail("path", path)
	}

	alg := compression.Resolve(algorithm, path)
	r, err := compression.NewReader(f, alg)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open ARFF file").
			WithDetail("path", path).
			WithDetail("compression", string(alg))
	}

	// decompressor first so it releases before the file handle goes away
	return newReaderLineSource(r, r, f), nil
}

func (s *readerLineSource) Next() (string, bool) {
	if s.closed {
		return "", false
	}
	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		_ = s.Close()
		return "", false
	}
	s.line++
	return s.scanner.Text(), true
}

func (s *readerLineSource) Err() error {
	return s.err
}

func (s *readerLineSource) LineNumber() int {
	return s.line
}

func (s *readerLineSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// mappedLineSource reads lines out of a memory-mapped, uncompressed file
type mappedLineSource struct {
	reader *mmap.LineReader
	line   int
	err    error
	closed bool
}

// OpenMappedFile memory-maps an uncompressed file at path
func OpenMappedFile(path string) (LineSource, error) {
	reader, err := mmap.NewLineReader(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to map ARFF file").
			WithDetail("path", path)
	}
	return &mappedLineSource{reader: reader}, nil
}

func (s *mappedLineSource) Next() (string, bool) {
	if s.closed {
		return "", false
	}
	line, ok := s.reader.Next()
	if !ok {
		_ = s.Close()
		return "", false
	}
	if len(line) > MaxLineSize {
		s.err = bufio.ErrTooLong
		_ = s.Close()
		return "", false
	}
	s.line++
	// copy out of the mapping, which goes away on Close
	return string(line), true
}

func (s *mappedLineSource) Err() error {
	return s.err
}

func (s *mappedLineSource) LineNumber() int {
	return s.line
}

func (s *mappedLineSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.reader.Close()
}
