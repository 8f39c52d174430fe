package arff

import (
	"strings"
	"unicode"
)

// grammar selects the token shape splitTokenFromLineStart matches
type grammar int

const (
	// nameGrammar matches relation and attribute names: a quoted string or
	// a run of non-whitespace not starting with { } , or %
	nameGrammar grammar = iota
	// nominalValueGrammar matches one class label inside {...}: a quoted
	// string or a run excluding whitespace, ',' and '}'
	nominalValueGrammar
	// attributeTypeGrammar matches a type keyword or a {...} class list
	attributeTypeGrammar
)

func (g grammar) String() string {
	switch g {
	case nameGrammar:
		return "name"
	case nominalValueGrammar:
		return "nominal value"
	case attributeTypeGrammar:
		return "attribute type"
	default:
		return "unknown"
	}
}

// splitTokenFromLineStart matches g at the start of line, after leading
// whitespace when ignoreLeadingWhitespace is set. It returns the matched
// token with any quotes intact and the unconsumed remainder, or the
// original line and false when nothing matches.
func splitTokenFromLineStart(line string, g grammar, ignoreLeadingWhitespace bool) (token, remainder string, ok bool) {
	s := line
	if ignoreLeadingWhitespace {
		s = trimLeadingSpace(s)
	}

	var n int
	switch g {
	case nameGrammar:
		n = matchName(s)
	case nominalValueGrammar:
		n = matchNominalValue(s)
	case attributeTypeGrammar:
		n = matchAttributeType(s)
	}
	if n == 0 {
		return "", line, false
	}
	return s[:n], s[n:], true
}

// matchQuoted returns the length of a quoted token at the start of s,
// quotes included, or 0. The token needs at least one interior character
// and ends at the next matching quote after it.
func matchQuoted(s string) int {
	if len(s) < 3 || !isQuote(s[0]) {
		return 0
	}
	if i := strings.IndexByte(s[2:], s[0]); i >= 0 {
		return i + 3
	}
	return 0
}

func matchName(s string) int {
	if n := matchQuoted(s); n > 0 {
		return n
	}
	if s == "" || strings.IndexByte("{},"+CommentSymbol, s[0]) >= 0 {
		return 0
	}
	return runLength(s, unicode.IsSpace)
}

func matchNominalValue(s string) int {
	if n := matchQuoted(s); n > 0 {
		return n
	}
	return runLength(s, func(r rune) bool {
		return r == ',' || r == '}' || unicode.IsSpace(r)
	})
}

func matchAttributeType(s string) int {
	if strings.HasPrefix(s, "{") {
		// the class list ends at the first closing brace, quoted or not
		if i := strings.IndexByte(s, '}'); i >= 0 {
			return i + 1
		}
		return 0
	}
	for _, kw := range typeKeywords {
		if len(s) < len(kw) || !strings.EqualFold(s[:len(kw)], kw) {
			continue
		}
		if len(s) == len(kw) || !isWordByte(s[len(kw)]) {
			return len(kw)
		}
	}
	return 0
}

// runLength returns the length of the prefix of s with no rune matching stop
func runLength(s string, stop func(rune) bool) int {
	if i := strings.IndexFunc(s, stop); i >= 0 {
		return i
	}
	return len(s)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// removeQuotes unwraps s if it is fully wrapped in matching quotes
func removeQuotes(s string) string {
	if len(s) >= 2 && isQuote(s[0]) && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func trimLeadingSpace(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func isWhitespaceOnly(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(line, CommentSymbol)
}

// hasPrefixFold reports whether s starts with prefix, ignoring case
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
