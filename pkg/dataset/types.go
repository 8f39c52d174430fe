// Package dataset provides the typed tabular model the ARFF loader plugs into.
//
// A relation is described by a frozen, ordered set of Headers. Each header
// has an AttributeType which fixes the representations its values are
// materialized in:
//
//	Numeric   Canonical (float64)
//	Nominal   Canonical (one-hot []float64), Label (string),
//	          Index (int), Entropic (*big.Int)
//
// Values are read from a Row through a typed Representation obtained from a
// header of the same frozen set:
//
//	rep, _ := headers.MustAt(4).LabelRep()
//	label, err := dataset.Get(row, rep)
//
// A representation taken from another header set fails with an ownership
// error, and reading a missing value fails with a missing_value error.
package dataset

import (
	"fmt"
	"math"
	"math/big"
	"slices"
)

// RepresentationKind identifies one encoding of an attribute value
type RepresentationKind int

const (
	// Canonical is the float value of a numeric attribute or the one-hot
	// vector of a nominal attribute
	Canonical RepresentationKind = iota
	// Label is the class label of a nominal attribute
	Label
	// Index is the zero-based class position of a nominal attribute
	Index
	// Entropic is the class position widened to arbitrary precision
	Entropic
)

// String returns the kind name
func (k RepresentationKind) String() string {
	switch k {
	case Canonical:
		return "canonical"
	case Label:
		return "label"
	case Index:
		return "index"
	case Entropic:
		return "entropic"
	default:
		return fmt.Sprintf("RepresentationKind(%d)", int(k))
	}
}

// AttributeType is the declared type of an attribute. The only
// implementations are Numeric and *Nominal.
type AttributeType interface {
	// Name is the type name used in diagnostics
	Name() string
	// Kinds lists the representations values of this type carry
	Kinds() []RepresentationKind
	// NumRepresentations is len(Kinds())
	NumRepresentations() int

	sealed()
}

// Numeric covers the ARFF numeric, integer and real types
type Numeric struct{}

var numericKinds = []RepresentationKind{Canonical}

// Name implements AttributeType
func (Numeric) Name() string { return "numeric" }

// Kinds implements AttributeType
func (Numeric) Kinds() []RepresentationKind { return slices.Clone(numericKinds) }

// NumRepresentations implements AttributeType
func (Numeric) NumRepresentations() int { return len(numericKinds) }

func (Numeric) sealed() {}

// Validate reports whether v can be held by a numeric attribute. NaN is
// rejected since it would be indistinguishable from a missing value for
// most consumers.
func (Numeric) Validate(v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("NaN is not a valid numeric value")
	}
	return nil
}

// Nominal is a categorical type with an ordered list of class labels.
// Labels keep their declaration order; duplicates are kept and resolve to
// their first position.
type Nominal struct {
	classes []string
	index   map[string]int
}

var nominalKinds = []RepresentationKind{Canonical, Label, Index, Entropic}

// NewNominal creates a nominal type over classes. At least one class is
// required.
func NewNominal(classes ...string) (*Nominal, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("nominal type requires at least one class")
	}
	n := &Nominal{
		classes: slices.Clone(classes),
		index:   make(map[string]int, len(classes)),
	}
	for i, c := range n.classes {
		if _, seen := n.index[c]; !seen {
			n.index[c] = i
		}
	}
	return n, nil
}

// Name implements AttributeType
func (*Nominal) Name() string { return "nominal" }

// Kinds implements AttributeType
func (*Nominal) Kinds() []RepresentationKind { return slices.Clone(nominalKinds) }

// NumRepresentations implements AttributeType
func (*Nominal) NumRepresentations() int { return len(nominalKinds) }

func (*Nominal) sealed() {}

// Classes returns a copy of the class labels in declaration order
func (n *Nominal) Classes() []string {
	return slices.Clone(n.classes)
}

// NumClasses returns the number of declared labels, duplicates included
func (n *Nominal) NumClasses() int {
	return len(n.classes)
}

// Class returns the label at position i
func (n *Nominal) Class(i int) (string, bool) {
	if i < 0 || i >= len(n.classes) {
		return "", false
	}
	return n.classes[i], true
}

// IndexOf returns the first position of label
func (n *Nominal) IndexOf(label string) (int, bool) {
	i, ok := n.index[label]
	return i, ok
}

// OneHot returns a vector of NumClasses zeros with a 1 at position i
func (n *Nominal) OneHot(i int) []float64 {
	v := make([]float64, len(n.classes))
	if i >= 0 && i < len(v) {
		v[i] = 1
	}
	return v
}

// Value is one attribute slot of a row holding every representation of its
// type, or nothing when the value is missing. Build values with
// MissingValue, NumericValue and NominalValue.
type Value struct {
	present  bool
	nominal  bool
	number   float64
	oneHot   []float64
	label    string
	index    int
	entropic *big.Int
}

// MissingValue returns the slot for the `?` sentinel
func MissingValue() Value {
	return Value{}
}

// NumericValue returns a present numeric slot
func NumericValue(v float64) Value {
	return Value{present: true, number: v}
}

// NominalValue returns a present nominal slot for label. Index, Entropic
// and Canonical are all derived from the label's first position in t. It
// returns false if label is not a class of t.
func NominalValue(t *Nominal, label string) (Value, bool) {
	i, ok := t.IndexOf(label)
	if !ok {
		return Value{}, false
	}
	return Value{
		present:  true,
		nominal:  true,
		label:    label,
		index:    i,
		entropic: big.NewInt(int64(i)),
		oneHot:   t.OneHot(i),
	}, true
}

// IsMissing reports whether the slot holds the missing sentinel
func (v Value) IsMissing() bool {
	return !v.present
}

// fits reports whether v can fill a slot of type t
func (v Value) fits(t AttributeType) bool {
	if !v.present {
		return true
	}
	switch tt := t.(type) {
	case Numeric:
		return !v.nominal
	case *Nominal:
		return v.nominal && len(v.oneHot) == tt.NumClasses()
	default:
		return false
	}
}

func (v Value) equal(o Value) bool {
	if v.present != o.present {
		return false
	}
	if !v.present {
		return true
	}
	if v.nominal != o.nominal {
		return false
	}
	if !v.nominal {
		return v.number == o.number
	}
	return v.label == o.label && v.index == o.index
}
