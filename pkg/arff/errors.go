package arff

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/arff/pkg/errors"
)

// Detail keys attached to parse errors
const (
	DetailLine       = "line"
	DetailLineNumber = "line_number"
	DetailContent    = "content"
)

func keywordsNotFoundError(keywords []string) *errors.Error {
	return errors.Newf(errors.ErrorTypeKeywordsNotFound,
		"couldn't find line containing any of: %s", strings.Join(keywords, ", ")).
		WithDetail("keywords", keywords)
}

func missingKeywordError(line, keyword string) *errors.Error {
	return errors.Newf(errors.ErrorTypeMissingKeyword, "line does not start with keyword %s: %s", keyword, line).
		WithDetail(DetailLine, line)
}

func relationNameNotValidError(line string) *errors.Error {
	return errors.Newf(errors.ErrorTypeRelationNameNotValid, "no valid relation name in: %s", line).
		WithDetail(DetailLine, line)
}

func attributeNameNotFoundError(line string) *errors.Error {
	return errors.Newf(errors.ErrorTypeAttributeNameNotFound, "no attribute name in: %s", line).
		WithDetail(DetailLine, line)
}

func attributeTypeNotFoundError(line string) *errors.Error {
	return errors.Newf(errors.ErrorTypeAttributeTypeNotFound, "no attribute type in: %s", line).
		WithDetail(DetailLine, line)
}

func unsupportedAttributeTypeError(typ string) *errors.Error {
	return errors.Newf(errors.ErrorTypeUnsupportedAttributeType, "unsupported attribute type: %s", typ).
		WithDetail(DetailContent, typ)
}

func nominalClassesError(spec string) *errors.Error {
	return errors.Newf(errors.ErrorTypeNominalClasses, "couldn't parse nominal classes from: %s", spec).
		WithDetail(DetailContent, spec)
}

func unrecognisedContentError(content, line string) *errors.Error {
	return errors.Newf(errors.ErrorTypeUnrecognisedContent, "unrecognised content '%s' in line: %s", content, line).
		WithDetail(DetailContent, content).
		WithDetail(DetailLine, line)
}

func dataSizeMismatchError(numAttributes int, line string) *errors.Error {
	return errors.Newf(errors.ErrorTypeDataSizeMismatch,
		"wrong number of values (require %d) in: %s", numAttributes, line).
		WithDetail(DetailLine, line).
		WithDetail("attributes", numAttributes)
}

func invalidValueError(value, attribute string, cause error) *errors.Error {
	msg := fmt.Sprintf("invalid value '%s' for attribute %s", value, attribute)
	var err *errors.Error
	if cause != nil {
		err = errors.Wrap(cause, errors.ErrorTypeInvalidValue, msg)
	} else {
		err = errors.New(errors.ErrorTypeInvalidValue, msg)
	}
	return err.WithDetail(DetailContent, value).WithDetail("attribute", attribute)
}

// atLine records the 1-based line number and text of the line err was
// raised on. Errors other than *errors.Error are wrapped as internal.
func atLine(err error, lineNumber int, line string) error {
	if err == nil {
		return nil
	}
	var e *errors.Error
	if !errors.As(err, &e) {
		e = errors.Wrap(err, errors.ErrorTypeInternal, "unexpected parse failure")
	}
	if _, ok := e.Detail(DetailLineNumber); !ok {
		e.Message = fmt.Sprintf("line %d: %s", lineNumber, e.Message)
		e.WithDetail(DetailLineNumber, lineNumber)
	}
	if _, ok := e.Detail(DetailLine); !ok {
		e.WithDetail(DetailLine, line)
	}
	return e
}

// LineNumber returns the line number recorded on a parse error
func LineNumber(err error) (int, bool) {
	var e *errors.Error
	if !errors.As(err, &e) {
		return 0, false
	}
	n, ok := e.Detail(DetailLineNumber)
	if !ok {
		return 0, false
	}
	i, ok := n.(int)
	return i, ok
}
