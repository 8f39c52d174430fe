package arff

import (
	"context"
	"io"
	"iter"

	"go.uber.org/zap"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
	"github.com/ajitpratap0/arff/pkg/metrics"
)

// Dataset is a loaded relation, either a *Stream or a *Batch
type Dataset interface {
	// Name is the relation name
	Name() string
	// Headers is the frozen attribute set shared by every row
	Headers() *dataset.Headers
	// Rows yields the rows in file order. For a Stream this consumes it.
	Rows(ctx context.Context) iter.Seq2[*dataset.Row, error]
	Close() error
}

// Stream parses the data section lazily, one line per pulled row. It can
// be consumed once and is not safe for concurrent use. The first error is
// sticky and closes the underlying source.
type Stream struct {
	name    string
	headers *dataset.Headers
	src     LineSource
	metrics *metrics.Collector
	logger  *zap.Logger
	mode    string

	rows int
	err  error
	done bool
}

func newStream(name string, headers *dataset.Headers, src LineSource, m *metrics.Collector, logger *zap.Logger) *Stream {
	return &Stream{
		name:    name,
		headers: headers,
		src:     src,
		metrics: m,
		logger:  logger,
		mode:    metrics.ModeStream,
	}
}

// Name returns the relation name
func (s *Stream) Name() string {
	return s.name
}

// Headers returns the relation's attributes
func (s *Stream) Headers() *dataset.Headers {
	return s.headers
}

// RowsRead returns the number of rows produced so far
func (s *Stream) RowsRead() int {
	return s.rows
}

// Next parses and returns the next row. It returns io.EOF once the data
// section is exhausted, and the same error on every call after a failure.
func (s *Stream) Next(ctx context.Context) (*dataset.Row, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.done {
		return nil, io.EOF
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, s.fail(err)
		}

		line, ok := s.src.Next()
		if !ok {
			if err := s.src.Err(); err != nil {
				return nil, s.fail(errors.Wrap(err, errors.ErrorTypeFile, "failed to read ARFF input"))
			}
			s.done = true
			s.logger.Debug("data section exhausted", zap.Int("rows", s.rows))
			return nil, io.EOF
		}

		if isWhitespaceOnly(line) || isCommentLine(line) {
			s.metrics.LineSkipped(metrics.SectionData)
			continue
		}

		row, err := parseDataLine(line, s.headers)
		if err != nil {
			return nil, s.fail(atLine(err, s.src.LineNumber(), line))
		}
		s.rows++
		s.metrics.RowParsed(s.mode)
		return row, nil
	}
}

// Rows yields the remaining rows. Iteration stops after the first error,
// which is yielded with a nil row.
func (s *Stream) Rows(ctx context.Context) iter.Seq2[*dataset.Row, error] {
	return func(yield func(*dataset.Row, error) bool) {
		for {
			row, err := s.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Close releases the underlying source. Further calls to Next return
// io.EOF.
func (s *Stream) Close() error {
	s.done = true
	return s.src.Close()
}

func (s *Stream) fail(err error) error {
	s.err = err
	_ = s.src.Close()
	s.metrics.ParseError(string(errors.TypeOf(err)))
	s.logger.Error("stream failed",
		zap.Int("rows", s.rows),
		zap.String("error_type", string(errors.TypeOf(err))),
		zap.Error(err))
	return err
}
