package dataset

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/arff/pkg/errors"
)

func colours(t *testing.T) *Nominal {
	t.Helper()
	n, err := NewNominal("red", "green", "blue")
	require.NoError(t, err)
	return n
}

func weatherHeaders(t *testing.T) *Headers {
	t.Helper()
	b := NewHeadersBuilder()
	require.NoError(t, b.Append("temperature", Numeric{}))
	require.NoError(t, b.Append("colour", colours(t)))
	return b.Freeze()
}

func TestNominal(t *testing.T) {
	n, err := NewNominal("a", "b", "a", "c")
	require.NoError(t, err)

	assert.Equal(t, 4, n.NumClasses())
	assert.Equal(t, []string{"a", "b", "a", "c"}, n.Classes())

	i, ok := n.IndexOf("a")
	assert.True(t, ok)
	assert.Equal(t, 0, i, "duplicates resolve to the first position")

	i, ok = n.IndexOf("c")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = n.IndexOf("d")
	assert.False(t, ok)

	assert.Equal(t, []float64{0, 0, 0, 1}, n.OneHot(3))

	_, err = NewNominal()
	assert.Error(t, err)
}

func TestNominalClassesAreCopied(t *testing.T) {
	classes := []string{"x", "y"}
	n, err := NewNominal(classes...)
	require.NoError(t, err)

	classes[0] = "changed"
	got := n.Classes()
	got[1] = "changed"

	assert.Equal(t, []string{"x", "y"}, n.Classes())
}

func TestNumericValidate(t *testing.T) {
	assert.NoError(t, Numeric{}.Validate(1.5))
	assert.NoError(t, Numeric{}.Validate(math.Inf(1)))
	assert.Error(t, Numeric{}.Validate(math.NaN()))
}

func TestRepresentationCounts(t *testing.T) {
	assert.Equal(t, 1, Numeric{}.NumRepresentations())
	assert.Equal(t, 4, colours(t).NumRepresentations())
	assert.Equal(t, []RepresentationKind{Canonical, Label, Index, Entropic}, colours(t).Kinds())

	h := weatherHeaders(t)
	assert.Equal(t, 5, h.NumRepresentations())
}

func TestHeadersBuilder(t *testing.T) {
	b := NewHeadersBuilder()
	require.NoError(t, b.Append("x", Numeric{}))
	require.NoError(t, b.Append("x", Numeric{}))
	assert.Error(t, b.Append("y", nil))
	assert.Equal(t, 2, b.Len())

	h := b.Freeze()
	assert.Equal(t, []string{"x", "x"}, h.Names())
	assert.Error(t, b.Append("z", Numeric{}), "frozen builder rejects appends")
	assert.Equal(t, 2, h.Len())

	for i, hdr := range h.All() {
		assert.Equal(t, i, hdr.Index())
	}

	_, err := h.At(2)
	assert.True(t, errors.IsType(err, errors.ErrorTypeOutOfRange))

	other := NewHeadersBuilder().Freeze()
	assert.NotEqual(t, h.Handle(), other.Handle())
}

func TestRepresentationsByType(t *testing.T) {
	h := weatherHeaders(t)

	_, err := h.MustAt(0).NumericRep()
	assert.NoError(t, err)
	_, err = h.MustAt(0).LabelRep()
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupportedAttributeType))

	_, err = h.MustAt(1).NumericRep()
	assert.Error(t, err)
	for _, f := range []func() error{
		func() error { _, err := h.MustAt(1).OneHotRep(); return err },
		func() error { _, err := h.MustAt(1).LabelRep(); return err },
		func() error { _, err := h.MustAt(1).IndexRep(); return err },
		func() error { _, err := h.MustAt(1).EntropicRep(); return err },
	} {
		assert.NoError(t, f())
	}
}

func TestRowGet(t *testing.T) {
	h := weatherHeaders(t)
	green, ok := NominalValue(colours(t), "green")
	require.True(t, ok)

	row, err := NewRow(h, []Value{NumericValue(21.5), green})
	require.NoError(t, err)
	assert.Equal(t, 5, row.NumRepresentations())

	temp, _ := h.MustAt(0).NumericRep()
	v, err := Get(row, temp)
	require.NoError(t, err)
	assert.Equal(t, 21.5, v)

	label, _ := h.MustAt(1).LabelRep()
	l, err := Get(row, label)
	require.NoError(t, err)
	assert.Equal(t, "green", l)

	index, _ := h.MustAt(1).IndexRep()
	i, err := Get(row, index)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	entropic, _ := h.MustAt(1).EntropicRep()
	e, err := Get(row, entropic)
	require.NoError(t, err)
	assert.Zero(t, e.Cmp(big.NewInt(1)))

	oneHot, _ := h.MustAt(1).OneHotRep()
	vec, err := Get(row, oneHot)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, vec)

	// returned slices do not alias the row
	vec[0] = 7
	again, _ := Get(row, oneHot)
	assert.Equal(t, []float64{0, 1, 0}, again)
}

func TestRowMissing(t *testing.T) {
	h := weatherHeaders(t)
	row, err := NewRow(h, []Value{MissingValue(), MissingValue()})
	require.NoError(t, err)

	assert.True(t, row.IsMissing(0))
	assert.True(t, row.IsMissing(1))
	assert.Equal(t, 5, row.NumRepresentations())

	temp, _ := h.MustAt(0).NumericRep()
	_, err = Get(row, temp)
	assert.True(t, errors.IsType(err, errors.ErrorTypeMissingValue))

	label, _ := h.MustAt(1).LabelRep()
	_, err = Get(row, label)
	assert.True(t, errors.IsType(err, errors.ErrorTypeMissingValue))
}

func TestRowOwnership(t *testing.T) {
	h := weatherHeaders(t)
	other := weatherHeaders(t)

	row, err := NewRow(h, []Value{NumericValue(1), MissingValue()})
	require.NoError(t, err)

	foreign, _ := other.MustAt(0).NumericRep()
	_, err = Get(row, foreign)
	assert.True(t, errors.IsType(err, errors.ErrorTypeOwnership))

	var zero Representation[float64]
	_, err = Get(row, zero)
	assert.True(t, errors.IsType(err, errors.ErrorTypeOwnership))
}

func TestNewRowValidation(t *testing.T) {
	h := weatherHeaders(t)

	_, err := NewRow(h, []Value{NumericValue(1)})
	assert.True(t, errors.IsType(err, errors.ErrorTypeDataSizeMismatch))

	red, _ := NominalValue(colours(t), "red")
	_, err = NewRow(h, []Value{red, NumericValue(1)})
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidValue))

	_, ok := NominalValue(colours(t), "purple")
	assert.False(t, ok)
}

func TestRowEqual(t *testing.T) {
	h := weatherHeaders(t)
	blue, _ := NominalValue(colours(t), "blue")

	a, _ := NewRow(h, []Value{NumericValue(3), blue})
	b, _ := NewRow(h, []Value{NumericValue(3), blue})
	c, _ := NewRow(h, []Value{MissingValue(), blue})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	other := weatherHeaders(t)
	d, _ := NewRow(other, []Value{NumericValue(3), blue})
	assert.False(t, a.Equal(d), "rows of different header sets differ")
}
