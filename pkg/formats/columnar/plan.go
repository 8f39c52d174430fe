package columnar

import (
	"strconv"
	"strings"

	"github.com/ajitpratap0/arff/pkg/dataset"
	"github.com/ajitpratap0/arff/pkg/errors"
)

type columnKind int

const (
	numericColumn columnKind = iota
	labelColumn
	indexColumn
)

// column is one output column derived from an attribute
type column struct {
	// name is the attribute name, or the attribute name with an _index
	// suffix for index columns
	name string
	// key is name sanitized to an Avro identifier and made unique
	key  string
	kind columnKind
	attr int

	numeric dataset.Representation[float64]
	label   dataset.Representation[string]
	index   dataset.Representation[int]
}

// columnPlan maps the attributes of one header set to output columns
type columnPlan struct {
	headers *dataset.Headers
	columns []column
}

func newColumnPlan(headers *dataset.Headers, withIndex bool) (*columnPlan, error) {
	if headers == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "headers are required for export")
	}

	plan := &columnPlan{headers: headers}
	for i, hdr := range headers.All() {
		switch hdr.Type().(type) {
		case dataset.Numeric:
			rep, err := hdr.NumericRep()
			if err != nil {
				return nil, err
			}
			plan.columns = append(plan.columns, column{name: hdr.Name(), kind: numericColumn, attr: i, numeric: rep})

		case *dataset.Nominal:
			label, err := hdr.LabelRep()
			if err != nil {
				return nil, err
			}
			plan.columns = append(plan.columns, column{name: hdr.Name(), kind: labelColumn, attr: i, label: label})
			if withIndex {
				index, err := hdr.IndexRep()
				if err != nil {
					return nil, err
				}
				plan.columns = append(plan.columns, column{name: hdr.Name() + "_index", kind: indexColumn, attr: i, index: index})
			}

		default:
			return nil, errors.Newf(errors.ErrorTypeUnsupportedAttributeType,
				"attribute %q of type %s cannot be exported", hdr.Name(), hdr.Type().Name())
		}
	}

	keys := uniqueNames(plan.columnNames(), sanitizeName)
	for i := range plan.columns {
		plan.columns[i].key = keys[i]
	}
	return plan, nil
}

func (p *columnPlan) columnNames() []string {
	names := make([]string, len(p.columns))
	for i, c := range p.columns {
		names[i] = c.name
	}
	return names
}

// check rejects rows from another header set
func (p *columnPlan) check(row *dataset.Row) error {
	if row.Headers() != p.headers {
		return errors.New(errors.ErrorTypeOwnership, "row belongs to a different relation than the writer")
	}
	return nil
}

// value returns the column's value in row as float64, string or int. ok is
// false for a missing value.
func (c *column) value(row *dataset.Row) (v interface{}, ok bool, err error) {
	if row.IsMissing(c.attr) {
		return nil, false, nil
	}
	switch c.kind {
	case numericColumn:
		v, err = dataset.Get(row, c.numeric)
	case labelColumn:
		v, err = dataset.Get(row, c.label)
	default:
		v, err = dataset.Get(row, c.index)
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// sanitizeName maps name to [A-Za-z_][A-Za-z0-9_]*
func sanitizeName(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c >= '0' && c <= '9':
			if b.Len() == 0 {
				b.WriteByte('_')
			}
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// uniqueNames transforms every name and suffixes repeats with _2, _3, ...
func uniqueNames(names []string, transform func(string) string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		base := transform(name)
		candidate := base
		for n := 2; seen[candidate]; n++ {
			candidate = base + "_" + strconv.Itoa(n)
		}
		seen[candidate] = true
		out[i] = candidate
	}
	return out
}
