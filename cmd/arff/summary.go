package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ajitpratap0/arff/pkg/arff"
	"github.com/ajitpratap0/arff/pkg/dataset"
)

type attributeSummary struct {
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Missing int            `json:"missing"`
	Min     *float64       `json:"min,omitempty"`
	Max     *float64       `json:"max,omitempty"`
	Classes []string       `json:"classes,omitempty"`
	Counts  map[string]int `json:"counts,omitempty"`
}

type relationSummary struct {
	Relation   string             `json:"relation"`
	Rows       int                `json:"rows"`
	Attributes []attributeSummary `json:"attributes"`
}

// summarize consumes ds and collects per-attribute statistics
func summarize(ctx context.Context, ds arff.Dataset) (*relationSummary, error) {
	headers := ds.Headers()
	summary := &relationSummary{
		Relation:   ds.Name(),
		Attributes: make([]attributeSummary, headers.Len()),
	}

	numeric := make([]dataset.Representation[float64], headers.Len())
	labels := make([]dataset.Representation[string], headers.Len())
	for i, hdr := range headers.All() {
		attr := attributeSummary{Name: hdr.Name(), Type: hdr.Type().Name()}
		switch t := hdr.Type().(type) {
		case dataset.Numeric:
			numeric[i], _ = hdr.NumericRep()
			attr.Min, attr.Max = floatPtr(math.Inf(1)), floatPtr(math.Inf(-1))
		case *dataset.Nominal:
			labels[i], _ = hdr.LabelRep()
			attr.Classes = t.Classes()
			attr.Counts = make(map[string]int, t.NumClasses())
		}
		summary.Attributes[i] = attr
	}

	for row, err := range ds.Rows(ctx) {
		if err != nil {
			return nil, err
		}
		summary.Rows++

		for i := range summary.Attributes {
			attr := &summary.Attributes[i]
			if row.IsMissing(i) {
				attr.Missing++
				continue
			}
			if attr.Counts != nil {
				label, err := dataset.Get(row, labels[i])
				if err != nil {
					return nil, err
				}
				attr.Counts[label]++
				continue
			}
			v, err := dataset.Get(row, numeric[i])
			if err != nil {
				return nil, err
			}
			*attr.Min = math.Min(*attr.Min, v)
			*attr.Max = math.Max(*attr.Max, v)
		}
	}

	// no observed values
	for i := range summary.Attributes {
		attr := &summary.Attributes[i]
		if attr.Min != nil && math.IsInf(*attr.Min, 1) {
			attr.Min, attr.Max = nil, nil
		}
	}
	return summary, nil
}

func floatPtr(f float64) *float64 {
	return &f
}

func (s *relationSummary) write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "relation:   %s\n", s.Relation)
	fmt.Fprintf(&b, "rows:       %d\n", s.Rows)
	fmt.Fprintf(&b, "attributes: %d\n", len(s.Attributes))
	for i, attr := range s.Attributes {
		fmt.Fprintf(&b, "\n[%d] %s (%s) missing=%d\n", i, attr.Name, attr.Type, attr.Missing)
		if attr.Min != nil {
			fmt.Fprintf(&b, "    min=%g max=%g\n", *attr.Min, *attr.Max)
		}
		for _, class := range attr.Classes {
			fmt.Fprintf(&b, "    %s: %d\n", class, attr.Counts[class])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
