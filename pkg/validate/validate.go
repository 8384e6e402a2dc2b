// Package validate collects field-level validation errors and warnings.
//
// Validation in changekit never stops at the first problem: statements,
// generators and changes add every error they find to a Result and the caller
// decides whether to abort. Warnings are informational and are always
// surfaced alongside errors.
//
// Example:
//
//	var res validate.Result
//	res.CheckRequired("tableName", stmt.Table)
//	res.CheckRequired("columnName", stmt.Column)
//	if err := res.Err(); err != nil {
//		return err // lists both fields when both are missing
//	}
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// ErrValidationFailed is the cause of every *ValidationError.
var ErrValidationFailed = errors.New("validation failed")

type (
	// FieldError describes a problem with a single configuration field.
	FieldError struct {
		Field   string
		Message string
	}

	// Result holds the errors and warnings produced by a validation pass. The
	// zero value is ready to use.
	Result struct {
		Errors   []FieldError
		Warnings []string
	}

	// ValidationError is returned by Result.Err when errors were collected.
	ValidationError struct {
		Errors []FieldError
	}
)

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

// AddError records an error for field.
func (r *Result) AddError(field, format string, args ...any) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// AddWarning records a warning.
func (r *Result) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// CheckRequired records an error when value is nil, an empty or blank string,
// or an empty slice or map.
func (r *Result) CheckRequired(field string, value any) {
	if isEmpty(value) {
		r.AddError(field, "is required")
	}
}

// CheckDisallowed records an error when value is set but the current
// environment cannot honour it.
func (r *Result) CheckDisallowed(field string, value any, dialect string) {
	if !isEmpty(value) {
		r.AddError(field, "is not allowed on %s", dialect)
	}
}

// Merge appends the errors and warnings of other. When prefix is not empty it
// is prepended to every field name as "prefix.field".
func (r *Result) Merge(prefix string, other Result) {
	for _, e := range other.Errors {
		if prefix != "" {
			if e.Field == "" {
				e.Field = prefix
			} else {
				e.Field = prefix + "." + e.Field
			}
		}
		r.Errors = append(r.Errors, e)
	}

	r.Warnings = append(r.Warnings, other.Warnings...)
}

// HasErrors reports whether any error was recorded.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether any warning was recorded.
func (r Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns a *ValidationError listing every recorded error, or nil.
func (r Result) Err() error {
	if !r.HasErrors() {
		return nil
	}

	errs := make([]FieldError, len(r.Errors))
	copy(errs, r.Errors)
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}

	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

// Cause returns ErrValidationFailed for use with errors.Cause.
func (e *ValidationError) Cause() error { return ErrValidationFailed }

// Unwrap returns ErrValidationFailed for use with errors.Is.
func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Fields returns the names of the invalid fields in the order they were found.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = fe.Field
	}

	return out
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return false
	}
}
