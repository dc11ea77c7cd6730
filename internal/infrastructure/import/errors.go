package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Import error codes
const (
	ErrCodeImportMalformedRow      = "ERR_IMPORT_MALFORMED_ROW"
	ErrCodeImportRequiredField     = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeImportInvalidFormat     = "ERR_IMPORT_INVALID_FORMAT"
	ErrCodeImportDuplicateInFile   = "ERR_IMPORT_DUPLICATE_IN_FILE"
	ErrCodeImportDuplicateInDB     = "ERR_IMPORT_DUPLICATE_IN_DB"
	ErrCodeImportReferenceNotFound = "ERR_IMPORT_REFERENCE_NOT_FOUND"
)

var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrMissingColumns is returned when required columns are absent
	ErrMissingColumns = errors.New("CSV file missing required columns")
)

// RowError describes a problem with one line of the file.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message}
}

// ErrorCollection accumulates row errors up to a limit while still counting
// every error seen.
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a collection keeping at most maxErrors entries
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{maxErrors: maxErrors}
}

// Add records an error
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequiredError records a missing required value
func (ec *ErrorCollection) AddRequiredError(row int, column string) {
	ec.Add(NewRowError(row, column, ErrCodeImportRequiredField, "required field is empty"))
}

// AddFormatError records a value that could not be interpreted
func (ec *ErrorCollection) AddFormatError(row int, column, message, value string) {
	e := NewRowError(row, column, ErrCodeImportInvalidFormat, message)
	e.Value = value
	ec.Add(e)
}

// Errors returns the kept errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Count returns the number of kept errors
func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}

// TotalCount returns the number of errors seen, including dropped ones
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors reports whether any error was recorded
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated reports whether errors were dropped over the limit
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > len(ec.errors)
}

func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s)", ec.totalCount)
	for _, e := range ec.errors {
		sb.WriteString("\n  ")
		sb.WriteString(e.Error())
	}
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, "\n  ... and %d more", ec.totalCount-len(ec.errors))
	}
	return sb.String()
}
