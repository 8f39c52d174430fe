package arff

import (
	"context"
	"io"
	"iter"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
	"github.com/ajitpratap0/arff/pkg/metrics"
)

// Batch holds every row of a relation in file order. It is read-only once
// built and may be iterated any number of times.
type Batch struct {
	name    string
	headers *dataset.Headers
	rows    []*dataset.Row
}

// NewBatch drains s into a batch and closes it. A failing row fails the
// whole batch.
func NewBatch(ctx context.Context, s *Stream) (*Batch, error) {
	defer s.Close()
	s.mode = metrics.ModeBatch

	var rows []*dataset.Row
	for {
		row, err := s.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &Batch{name: s.name, headers: s.headers, rows: rows}, nil
}

// Name returns the relation name
func (b *Batch) Name() string {
	return b.name
}

// Headers returns the relation's attributes
func (b *Batch) Headers() *dataset.Headers {
	return b.headers
}

// NumRows returns the number of data rows
func (b *Batch) NumRows() int {
	return len(b.rows)
}

// NumColumns returns the number of attributes
func (b *Batch) NumColumns() int {
	return b.headers.Len()
}

// Row returns the row at position i
func (b *Batch) Row(i int) (*dataset.Row, error) {
	if i < 0 || i >= len(b.rows) {
		return nil, errors.Newf(errors.ErrorTypeOutOfRange, "row index %d out of range [0, %d)", i, len(b.rows)).
			WithDetail("index", i)
	}
	return b.rows[i], nil
}

// All yields every row with its position
func (b *Batch) All() iter.Seq2[int, *dataset.Row] {
	return func(yield func(int, *dataset.Row) bool) {
		for i, row := range b.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Rows yields every row; the error is always nil. It exists so a Batch
// satisfies Dataset and stops early if ctx is cancelled.
func (b *Batch) Rows(ctx context.Context) iter.Seq2[*dataset.Row, error] {
	return func(yield func(*dataset.Row, error) bool) {
		for _, row := range b.rows {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Close is a no-op; the source was released when the batch was built
func (b *Batch) Close() error {
	return nil
}

// Value reads one representation of row i
func Value[T any](b *Batch, rep dataset.Representation[T], i int) (T, error) {
	row, err := b.Row(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return dataset.Get(row, rep)
}

// Column reads one representation from every row. valid[i] is false where
// row i holds a missing value.
func Column[T any](b *Batch, rep dataset.Representation[T]) (values []T, valid []bool, err error) {
	values = make([]T, len(b.rows))
	valid = make([]bool, len(b.rows))
	for i, row := range b.rows {
		v, err := dataset.Get(row, rep)
		switch {
		case err == nil:
			values[i] = v
			valid[i] = true
		case errors.IsType(err, errors.ErrorTypeMissingValue):
		default:
			return nil, nil, err
		}
	}
	return values, valid, nil
}
