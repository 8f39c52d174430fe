package dataset

import (
	"math/big"
	"slices"

	"github.com/ajitpratap0/arff/pkg/errors"
)

// Row is an immutable row holding one Value per header of its header set
type Row struct {
	headers *Headers
	values  []Value
}

// NewRow creates a row over headers. values must hold one slot per header,
// each fitting its header's type.
func NewRow(headers *Headers, values []Value) (*Row, error) {
	if len(values) != headers.Len() {
		return nil, errors.Newf(errors.ErrorTypeDataSizeMismatch,
			"row has %d values for %d headers", len(values), headers.Len())
	}
	for i, v := range values {
		if hdr := headers.headers[i]; !v.fits(hdr.typ) {
			return nil, errors.Newf(errors.ErrorTypeInvalidValue,
				"value in column %d does not fit %s attribute %q", i, hdr.typ.Name(), hdr.name).
				WithDetail("attribute", hdr.name)
		}
	}
	return &Row{headers: headers, values: slices.Clone(values)}, nil
}

// Headers returns the header set of the row
func (r *Row) Headers() *Headers {
	return r.headers
}

// Len returns the number of columns
func (r *Row) Len() int {
	return len(r.values)
}

// NumRepresentations counts every representation slot of the row, missing
// ones included
func (r *Row) NumRepresentations() int {
	return r.headers.NumRepresentations()
}

// IsMissing reports whether column i holds the missing sentinel. Out of
// range columns report true.
func (r *Row) IsMissing(i int) bool {
	if i < 0 || i >= len(r.values) {
		return true
	}
	return r.values[i].IsMissing()
}

// Equal reports whether both rows share a header set and hold equal values
func (r *Row) Equal(o *Row) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.headers.handle != o.headers.handle || len(r.values) != len(o.values) {
		return false
	}
	for i := range r.values {
		if !r.values[i].equal(o.values[i]) {
			return false
		}
	}
	return true
}

// Get reads one representation from row. It fails with an ownership error
// if rep was derived from another header set and with a missing_value
// error if the slot holds `?`. Slices and big integers are returned as
// copies.
func Get[T any](row *Row, rep Representation[T]) (T, error) {
	var zero T
	if rep.handle != row.headers.handle {
		return zero, errors.New(errors.ErrorTypeOwnership, "representation belongs to another header set").
			WithDetail("column", rep.column)
	}
	if rep.column < 0 || rep.column >= len(row.values) {
		return zero, errors.Newf(errors.ErrorTypeOutOfRange, "column %d out of range [0, %d)", rep.column, len(row.values))
	}

	v := row.values[rep.column]
	if v.IsMissing() {
		return zero, errors.Newf(errors.ErrorTypeMissingValue, "value of %q is missing", row.headers.headers[rep.column].name).
			WithDetail("column", rep.column).
			WithDetail("representation", rep.kind.String())
	}

	var out any
	switch {
	case rep.kind == Canonical && !v.nominal:
		out = v.number
	case rep.kind == Canonical:
		out = slices.Clone(v.oneHot)
	case rep.kind == Label:
		out = v.label
	case rep.kind == Index:
		out = v.index
	case rep.kind == Entropic:
		out = new(big.Int).Set(v.entropic)
	}

	t, ok := out.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrorTypeInternal, "%s representation of column %d has type %T", rep.kind, rep.column, out)
	}
	return t, nil
}
