// Package errors defines the structured error returned by the search URL
// builder and how it is presented to users.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeInvalidGenre       ErrorType = "invalid_genre"
	ErrorTypeInvalidCountryName ErrorType = "invalid_country_name"
	ErrorTypeInvalidRating      ErrorType = "invalid_rating"
	ErrorTypeInvalidDateFormat  ErrorType = "invalid_date_format"
	ErrorTypeInvalidSortType    ErrorType = "invalid_sort_type"
	ErrorTypeInvalidSortOption  ErrorType = "invalid_sort_option"
	ErrorTypeInvalidTitleType   ErrorType = "invalid_title_type"

	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// validationTypes are the caller-fixable failures raised while building a search URL
var validationTypes = map[ErrorType]bool{
	ErrorTypeInvalidGenre:       true,
	ErrorTypeInvalidCountryName: true,
	ErrorTypeInvalidRating:      true,
	ErrorTypeInvalidDateFormat:  true,
	ErrorTypeInvalidSortType:    true,
	ErrorTypeInvalidSortOption:  true,
	ErrorTypeInvalidTitleType:   true,
}

// SearchError represents a structured error with context
type SearchError struct {
	Type    ErrorType
	Message string
	Context map[string]interface{}
	Cause   error
}

// Error implements the error interface
func (e *SearchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping
func (e *SearchError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a specific type
func (e *SearchError) Is(target error) bool {
	if targetErr, ok := target.(*SearchError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *SearchError) WithContext(key string, value interface{}) *SearchError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsValidation reports whether the error was raised by filter validation
func (e *SearchError) IsValidation() bool {
	return validationTypes[e.Type]
}

// New creates a new SearchError
func New(errType ErrorType, message string) *SearchError {
	return &SearchError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *SearchError {
	return &SearchError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
		Cause:   err,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *SearchError {
	return Wrap(err, errType, fmt.Sprintf(format, args...))
}

// Newf creates a new SearchError with formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *SearchError {
	return New(errType, fmt.Sprintf(format, args...))
}

// Kind returns a sentinel usable with errors.Is to match every error of the given type
func Kind(errType ErrorType) error {
	return &SearchError{Type: errType}
}

// As finds the first SearchError in err's chain
func As(err error) (*SearchError, bool) {
	var sErr *SearchError
	if stderrors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	if sErr, ok := As(err); ok {
		return sErr.Type == errType
	}
	return false
}

// GetType returns the error type, or ErrorTypeInternal if not a SearchError
func GetType(err error) ErrorType {
	if sErr, ok := As(err); ok {
		return sErr.Type
	}
	return ErrorTypeInternal
}

// GetContext returns context information from the error
func GetContext(err error) map[string]interface{} {
	if sErr, ok := As(err); ok {
		return sErr.Context
	}
	return nil
}
