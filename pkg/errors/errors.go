// Package errors provides structured error handling for the ARFF loader.
//
// Every failure raised while reading an ARFF file is an *Error whose Type
// names the failure kind. Parse errors carry the offending line and its
// number in Details so callers can report them without string matching.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeKeywordsNotFound is raised when a required section keyword
	// is absent before the input is exhausted
	ErrorTypeKeywordsNotFound ErrorType = "keywords_not_found"
	// ErrorTypeMissingKeyword is raised when a line expected to start with
	// a keyword does not
	ErrorTypeMissingKeyword ErrorType = "missing_keyword"
	// ErrorTypeRelationNameNotValid is raised when no name follows @relation
	ErrorTypeRelationNameNotValid ErrorType = "relation_name_not_valid"
	// ErrorTypeAttributeNameNotFound is raised when no name follows @attribute
	ErrorTypeAttributeNameNotFound ErrorType = "attribute_name_not_found"
	// ErrorTypeAttributeTypeNotFound is raised when an attribute declares no type
	ErrorTypeAttributeTypeNotFound ErrorType = "attribute_type_not_found"
	// ErrorTypeUnsupportedAttributeType is raised for date, string,
	// relational or unknown attribute types
	ErrorTypeUnsupportedAttributeType ErrorType = "unsupported_attribute_type"
	// ErrorTypeNominalClasses is raised for a malformed {...} class list
	ErrorTypeNominalClasses ErrorType = "nominal_classes_parse_error"
	// ErrorTypeUnrecognisedContent is raised for trailing content after a
	// successfully parsed token
	ErrorTypeUnrecognisedContent ErrorType = "unrecognised_content"
	// ErrorTypeDataSizeMismatch is raised when a data line has the wrong
	// number of values
	ErrorTypeDataSizeMismatch ErrorType = "data_size_mismatch"
	// ErrorTypeInvalidValue is raised for a value its attribute cannot hold
	ErrorTypeInvalidValue ErrorType = "invalid_value"
	// ErrorTypeMissingValue is raised when reading a missing value
	ErrorTypeMissingValue ErrorType = "missing_value"
	// ErrorTypeOwnership is raised when a representation from another
	// header set is used to read a row
	ErrorTypeOwnership ErrorType = "ownership"
	// ErrorTypeOutOfRange represents index out of bounds errors
	ErrorTypeOutOfRange ErrorType = "out_of_range"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeExport represents failures writing a relation to an export format
	ErrorTypeExport ErrorType = "export"
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Detail returns the detail stored under key, if any
func (e *Error) Detail(key string) (interface{}, bool) {
	v, ok := e.Details[key]
	return v, ok
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// TypeOf returns the type of the outermost *Error in the chain, or
// ErrorTypeInternal for foreign errors
func TypeOf(err error) ErrorType {
	var e *Error
	if !errors.As(err, &e) {
		return ErrorTypeInternal
	}
	return e.Type
}

// As is errors.As re-exported so callers need a single errors import
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Is is errors.Is re-exported so callers need a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
