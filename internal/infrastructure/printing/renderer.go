package printing

import (
	"context"
	"time"
)

// A4 paper in millimeters
const (
	a4WidthMM  = 210
	a4HeightMM = 297
)

// Margins in millimeters
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins is 15mm on every side
func DefaultMargins() Margins {
	return Margins{Top: 15, Right: 15, Bottom: 15, Left: 15}
}

// PageSetup describes the sheet a document is printed on
type PageSetup struct {
	Landscape bool
	Margins   Margins
	// Title goes into the document metadata when the HTML lacks one
	Title string
	// FooterHTML is repeated on every page (optional)
	FooterHTML string
	// Timeout overrides the printer default
	Timeout time.Duration
}

// PrintResult is a printed PDF document
type PrintResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// HTMLPrinter turns an HTML document into PDF bytes
type HTMLPrinter interface {
	Print(ctx context.Context, html string, setup PageSetup) (*PrintResult, error)
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
