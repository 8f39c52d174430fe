package arff

import (
	"strconv"

	"github.com/ajitpratap0/arff/pkg/dataset"
)

// parseDataLine splits line into one value per header and materializes
// every representation of each value
func parseDataLine(line string, headers *dataset.Headers) (*dataset.Row, error) {
	raw, err := splitValues(line, headers.Len())
	if err != nil {
		return nil, err
	}

	values := make([]dataset.Value, len(raw))
	for i, hdr := range headers.All() {
		v, err := materialize(hdr, raw[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return dataset.NewRow(headers, values)
}

// materialize converts one raw token to the slot of hdr's type
func materialize(hdr dataset.Header, token string) (dataset.Value, error) {
	switch t := hdr.Type().(type) {
	case dataset.Numeric:
		if token == MissingValueSymbol {
			return dataset.MissingValue(), nil
		}
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return dataset.Value{}, invalidValueError(token, hdr.Name(), err)
		}
		if err := t.Validate(f); err != nil {
			return dataset.Value{}, invalidValueError(token, hdr.Name(), err)
		}
		return dataset.NumericValue(f), nil

	case *dataset.Nominal:
		if token == MissingValueSymbol {
			return dataset.MissingValue(), nil
		}
		v, ok := dataset.NominalValue(t, token)
		if !ok {
			return dataset.Value{}, invalidValueError(token, hdr.Name(), nil)
		}
		return v, nil

	default:
		return dataset.Value{}, unsupportedAttributeTypeError(hdr.Type().Name())
	}
}
