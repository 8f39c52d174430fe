package arff

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ajitpratap0/arff/pkg/dataset"
)

// Quote returns s as it must appear in an ARFF file to read back as s.
// Values containing whitespace, a comment symbol or equal to the missing
// value symbol are double-quoted; values containing one kind of quote are
// wrapped in the other. A value containing both kinds has no valid quoting
// and is returned as is.
func Quote(s string) string {
	hasSingle := strings.Contains(s, "'")
	hasDouble := strings.Contains(s, `"`)
	switch {
	case hasSingle && hasDouble:
		return s
	case hasSingle:
		return `"` + s + `"`
	case hasDouble:
		return "'" + s + "'"
	case s == MissingValueSymbol,
		strings.Contains(s, CommentSymbol),
		strings.ContainsFunc(s, unicode.IsSpace),
		strings.ContainsAny(s, ",{}"):
		return `"` + s + `"`
	default:
		return s
	}
}

// FormatRow renders row as an ARFF data line. Missing values print as `?`.
func FormatRow(row *dataset.Row) string {
	headers := row.Headers()
	fields := make([]string, headers.Len())
	for i, hdr := range headers.All() {
		fields[i] = formatValue(row, hdr)
	}
	return strings.Join(fields, ",")
}

// FormatHeader renders the relation and attribute declarations of a
// relation, ending with the @data line
func FormatHeader(name string, headers *dataset.Headers) string {
	var b strings.Builder
	b.WriteString(RelationKeyword + " " + Quote(name) + "\n\n")
	for _, hdr := range headers.All() {
		b.WriteString(AttributeKeyword + " " + Quote(hdr.Name()) + " " + formatType(hdr.Type()) + "\n")
	}
	b.WriteString("\n" + DataKeyword + "\n")
	return b.String()
}

func formatType(t dataset.AttributeType) string {
	nominal, ok := t.(*dataset.Nominal)
	if !ok {
		return NumericKeyword
	}
	classes := nominal.Classes()
	for i, c := range classes {
		classes[i] = Quote(c)
	}
	return "{" + strings.Join(classes, ",") + "}"
}

func formatValue(row *dataset.Row, hdr dataset.Header) string {
	if row.IsMissing(hdr.Index()) {
		return MissingValueSymbol
	}
	if rep, err := hdr.NumericRep(); err == nil {
		if v, err := dataset.Get(row, rep); err == nil {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	if rep, err := hdr.LabelRep(); err == nil {
		if v, err := dataset.Get(row, rep); err == nil {
			return Quote(v)
		}
	}
	return MissingValueSymbol
}
