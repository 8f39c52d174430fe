package dataset

import (
	"iter"
	"math/big"
	"sync/atomic"

	"github.com/ajitpratap0/arff/pkg/errors"
)

// handles hands out the opaque ids that tie representations and rows to
// the header set they were derived from
var handles atomic.Uint64

// HeadersBuilder collects headers in declaration order. It is append-only
// and becomes unusable once frozen.
type HeadersBuilder struct {
	entries []headerEntry
	frozen  bool
}

type headerEntry struct {
	name string
	typ  AttributeType
}

// NewHeadersBuilder creates an empty builder
func NewHeadersBuilder() *HeadersBuilder {
	return &HeadersBuilder{}
}

// Append adds a header at the end of the set. Names need not be unique.
func (b *HeadersBuilder) Append(name string, t AttributeType) error {
	if b.frozen {
		return errors.New(errors.ErrorTypeInternal, "headers builder is already frozen")
	}
	if t == nil {
		return errors.Newf(errors.ErrorTypeInternal, "attribute %q has no type", name)
	}
	b.entries = append(b.entries, headerEntry{name: name, typ: t})
	return nil
}

// Len returns the number of headers appended so far
func (b *HeadersBuilder) Len() int {
	return len(b.entries)
}

// Freeze returns the immutable header set. Later calls to Append fail.
func (b *HeadersBuilder) Freeze() *Headers {
	b.frozen = true
	h := &Headers{
		handle:  handles.Add(1),
		headers: make([]Header, len(b.entries)),
	}
	for i, e := range b.entries {
		h.headers[i] = Header{name: e.name, typ: e.typ, index: i, handle: h.handle}
	}
	return h
}

// Headers is a frozen, ordered header set shared by every row of a relation
type Headers struct {
	handle  uint64
	headers []Header
}

// Handle returns the opaque id of this header set
func (h *Headers) Handle() uint64 {
	return h.handle
}

// Len returns the number of headers
func (h *Headers) Len() int {
	return len(h.headers)
}

// At returns the header at position i
func (h *Headers) At(i int) (Header, error) {
	if i < 0 || i >= len(h.headers) {
		return Header{}, errors.Newf(errors.ErrorTypeOutOfRange, "header index %d out of range [0, %d)", i, len(h.headers)).
			WithDetail("index", i)
	}
	return h.headers[i], nil
}

// MustAt is At for indices known to be valid; it panics otherwise
func (h *Headers) MustAt(i int) Header {
	hdr, err := h.At(i)
	if err != nil {
		panic(err)
	}
	return hdr
}

// Lookup returns the first header named name
func (h *Headers) Lookup(name string) (Header, bool) {
	for _, hdr := range h.headers {
		if hdr.name == name {
			return hdr, true
		}
	}
	return Header{}, false
}

// All iterates the headers in declaration order
func (h *Headers) All() iter.Seq2[int, Header] {
	return func(yield func(int, Header) bool) {
		for i, hdr := range h.headers {
			if !yield(i, hdr) {
				return
			}
		}
	}
}

// Names returns the header names in declaration order
func (h *Headers) Names() []string {
	names := make([]string, len(h.headers))
	for i, hdr := range h.headers {
		names[i] = hdr.name
	}
	return names
}

// NumRepresentations is the number of representation slots of a row over
// this header set
func (h *Headers) NumRepresentations() int {
	n := 0
	for _, hdr := range h.headers {
		n += hdr.typ.NumRepresentations()
	}
	return n
}

// Header is one column of a frozen header set
type Header struct {
	name   string
	typ    AttributeType
	index  int
	handle uint64
}

// Name returns the attribute name
func (h Header) Name() string { return h.name }

// Type returns the declared attribute type
func (h Header) Type() AttributeType { return h.typ }

// Index returns the column position
func (h Header) Index() int { return h.index }

// Representation is a capability to read one representation of one column
// from rows of the header set it was derived from. T is the Go type the
// representation decodes to.
type Representation[T any] struct {
	handle uint64
	column int
	kind   RepresentationKind
}

// Kind returns the representation kind
func (r Representation[T]) Kind() RepresentationKind { return r.kind }

// Column returns the column this representation reads
func (r Representation[T]) Column() int { return r.column }

func rep[T any](h Header, k RepresentationKind) Representation[T] {
	return Representation[T]{handle: h.handle, column: h.index, kind: k}
}

func (h Header) wrongType(k RepresentationKind, want string) error {
	return errors.Newf(errors.ErrorTypeUnsupportedAttributeType,
		"attribute %q is %s and has no %s %s representation", h.name, h.typ.Name(), want, k).
		WithDetail("attribute", h.name)
}

// NumericRep returns the Canonical representation of a numeric header
func (h Header) NumericRep() (Representation[float64], error) {
	if _, ok := h.typ.(Numeric); !ok {
		return Representation[float64]{}, h.wrongType(Canonical, "numeric")
	}
	return rep[float64](h, Canonical), nil
}

// OneHotRep returns the Canonical representation of a nominal header
func (h Header) OneHotRep() (Representation[[]float64], error) {
	if _, ok := h.typ.(*Nominal); !ok {
		return Representation[[]float64]{}, h.wrongType(Canonical, "nominal")
	}
	return rep[[]float64](h, Canonical), nil
}

// LabelRep returns the Label representation of a nominal header
func (h Header) LabelRep() (Representation[string], error) {
	if _, ok := h.typ.(*Nominal); !ok {
		return Representation[string]{}, h.wrongType(Label, "nominal")
	}
	return rep[string](h, Label), nil
}

// IndexRep returns the Index representation of a nominal header
func (h Header) IndexRep() (Representation[int], error) {
	if _, ok := h.typ.(*Nominal); !ok {
		return Representation[int]{}, h.wrongType(Index, "nominal")
	}
	return rep[int](h, Index), nil
}

// EntropicRep returns the Entropic representation of a nominal header
func (h Header) EntropicRep() (Representation[*big.Int], error) {
	if _, ok := h.typ.(*Nominal); !ok {
		return Representation[*big.Int]{}, h.wrongType(Entropic, "nominal")
	}
	return rep[*big.Int](h, Entropic), nil
}
