package core

import (
	"errors"
	"fmt"
	"strconv"
)

// FileAccessError is returned when the source table cannot be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file access error: %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when the table layout does not match what the
// loader was asked for, e.g. the key column is missing.
type SchemaError struct {
	Path   string
	Line   int // 1-based; 0 when the error concerns the header as a whole
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc += ":" + strconv.Itoa(e.Line)
	}
	if e.Field != "" {
		return fmt.Sprintf("schema error: %s: field %q: %s", loc, e.Field, e.Reason)
	}
	return fmt.Sprintf("schema error: %s: %s", loc, e.Reason)
}

// ParseError is returned when a non-empty year field is not a number.
type ParseError struct {
	Code  string
	Name  string
	Year  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (%s) year %s: invalid number %q", e.Name, e.Code, e.Year, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NumericDomainError is returned when a value cannot be log-scaled because it
// is not strictly positive (or not finite).
type NumericDomainError struct {
	Code  string
	Name  string
	Year  string
	Value float64
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("numeric domain error: %s (%s) year %s: log10 undefined for %v", e.Name, e.Code, e.Year, e.Value)
}

// IsFileAccess reports whether err is or wraps a *FileAccessError.
func IsFileAccess(err error) bool {
	var target *FileAccessError
	return errors.As(err, &target)
}

// IsSchema reports whether err is or wraps a *SchemaError.
func IsSchema(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}

// IsParse reports whether err is or wraps a *ParseError.
func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsNumericDomain reports whether err is or wraps a *NumericDomainError.
func IsNumericDomain(err error) bool {
	var target *NumericDomainError
	return errors.As(err, &target)
}
