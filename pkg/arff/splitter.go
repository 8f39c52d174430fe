package arff

import (
	"strings"
	"unicode"
)

// splitValues splits one data line into exactly n raw values.
//
// Values are separated by a tab or a comma. Leading spaces are skipped and
// trailing whitespace of unquoted values is trimmed. A value starting with
// a quote runs to the matching quote and is taken verbatim without them;
// only spaces may follow it before the next delimiter or the end of the
// line. After the n-th value the line must be consumed exactly.
func splitValues(line string, n int) ([]string, error) {
	values := make([]string, 0, n)
	size := len(line)
	j := 0

	for range n {
		for j < size && line[j] == ' ' {
			j++
		}
		if j >= size {
			return nil, dataSizeMismatchError(n, line)
		}

		if quote := line[j]; isQuote(quote) {
			start := j + 1
			end := strings.IndexByte(line[start:], quote)
			if end < 0 {
				// unterminated quote
				return nil, dataSizeMismatchError(n, line)
			}
			end += start
			values = append(values, line[start:end])

			j = end + 1
			for j < size && line[j] == ' ' {
				j++
			}
			if j < size && !isDataDelimiter(line[j]) {
				return nil, unrecognisedContentError(line[j:], line)
			}
		} else {
			start := j
			for j < size && !isDataDelimiter(line[j]) {
				j++
			}
			values = append(values, strings.TrimRightFunc(line[start:j], unicode.IsSpace))
		}

		// j is on the delimiter ending this value, or at the end of the line
		j++
	}

	// the last value must have ended at the end of the line, not on a
	// delimiter
	if j-1 != size {
		rest := line
		if j-1 >= 0 && j-1 < size {
			rest = line[j-1:]
		}
		return nil, unrecognisedContentError(rest, line)
	}
	return values, nil
}
