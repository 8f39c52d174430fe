package arff

import (
	"strings"
	"unicode"

	"github.com/ajitpratap0/arff/pkg/dataset"
)

// removeKeyword strips keyword, matched case-insensitively, from the
// start of line
func removeKeyword(line, keyword string) (string, error) {
	if !hasPrefixFold(line, keyword) {
		return "", missingKeywordError(line, keyword)
	}
	return line[len(keyword):], nil
}

// parseRelationLine returns the unquoted relation name declared by line
func parseRelationLine(line string) (string, error) {
	rest, err := removeKeyword(line, RelationKeyword)
	if err != nil {
		return "", err
	}

	name, remainder, ok := splitTokenFromLineStart(rest, nameGrammar, true)
	if !ok {
		return "", relationNameNotValidError(line)
	}
	if !isWhitespaceOnly(remainder) {
		return "", unrecognisedContentError(remainder, line)
	}
	return removeQuotes(name), nil
}

// parseAttribute returns the unquoted name and the type declared by an
// @attribute line
func parseAttribute(line string) (string, dataset.AttributeType, error) {
	rest, err := removeKeyword(line, AttributeKeyword)
	if err != nil {
		return "", nil, err
	}

	name, rest, ok := splitTokenFromLineStart(rest, nameGrammar, true)
	if !ok {
		return "", nil, attributeNameNotFoundError(line)
	}

	typ, rest, err := parseAttributeType(rest, line)
	if err != nil {
		return "", nil, err
	}
	if !isWhitespaceOnly(rest) {
		return "", nil, unrecognisedContentError(rest, line)
	}
	return removeQuotes(name), typ, nil
}

// parseAttributeType consumes the type token from the start of s. line is
// the whole declaration, used for diagnostics.
func parseAttributeType(s, line string) (dataset.AttributeType, string, error) {
	token, rest, ok := splitTokenFromLineStart(s, attributeTypeGrammar, true)
	if !ok {
		word := trimLeadingSpace(s)
		if word == "" || strings.HasPrefix(word, "{") {
			return nil, s, attributeTypeNotFoundError(line)
		}
		// any other word is a type we have no keyword for
		return nil, s, unsupportedAttributeTypeError(word[:runLength(word, unicode.IsSpace)])
	}

	if strings.HasPrefix(token, "{") {
		classes, err := parseNominalClasses(token)
		if err != nil {
			return nil, s, err
		}
		nominal, err := dataset.NewNominal(classes...)
		if err != nil {
			return nil, s, nominalClassesError(token)
		}
		return nominal, rest, nil
	}

	switch strings.ToLower(token) {
	case NumericKeyword, IntegerKeyword, RealKeyword:
		return dataset.Numeric{}, rest, nil
	default:
		return nil, s, unsupportedAttributeTypeError(token)
	}
}

// parseNominalClasses returns the unquoted labels of a {...} class list in
// declaration order. Duplicates are kept.
func parseNominalClasses(spec string) ([]string, error) {
	if !strings.HasPrefix(spec, "{") {
		return nil, nominalClassesError(spec)
	}

	var classes []string
	rest := spec[1:]
	for {
		value, remainder, ok := splitTokenFromLineStart(rest, nominalValueGrammar, true)
		if !ok {
			// covers {}, {a,} and {a,,b}
			return nil, nominalClassesError(spec)
		}
		classes = append(classes, removeQuotes(value))

		rest = trimLeadingSpace(remainder)
		switch {
		case strings.HasPrefix(rest, ","):
			rest = rest[1:]
		case rest == "}":
			return classes, nil
		default:
			return nil, nominalClassesError(spec)
		}
	}
}
