// Package parsererror defines the typed errors shared by the statement
// parser, the tag store, and the categorizer. Callers inspect them with
// errors.As to decide how a failure is surfaced.
package parsererror

import "fmt"

// ParseError is a single field that could not be decoded.
// Row-level ParseErrors are logged and the row is skipped.
type ParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s='%s': %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError means the input as a whole is not a usable statement.
type InvalidFormatError struct {
	Source         string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid format in '%s': %s", e.Source, e.Msg)
	if e.ExpectedFormat != "" {
		msg += ". Expected: " + e.ExpectedFormat
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// ValidationError is a request or configuration value that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// CategorizationError wraps a failure of the embedding model while
// categorizing a description.
type CategorizationError struct {
	Description string
	Stage       string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for '%s' during %s: %v", e.Description, e.Stage, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
