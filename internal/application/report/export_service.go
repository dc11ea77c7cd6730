package report

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/report"
	"github.com/salesdash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Format is an export file format
type Format string

const (
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for formats without a renderer
var ErrUnsupportedFormat = shared.NewDomainError("UNSUPPORTED_FORMAT", "Export format must be one of: html, xlsx, pdf")

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case FormatHTML, FormatXLSX, FormatPDF:
		return f, nil
	case "htm":
		return FormatHTML, nil
	}
	return "", ErrUnsupportedFormat
}

// Renderer writes report documents in one format
type Renderer interface {
	RenderStaffTable(ctx context.Context, w io.Writer, table *report.StaffTable) error
	RenderPerformance(ctx context.Context, w io.Writer, rep *report.PerformanceReport) error
}

// ExportService renders reports to files
type ExportService struct {
	reports   *ReportService
	renderers map[Format]Renderer
	logger    *zap.Logger
}

// NewExportService creates a new ExportService with the given renderers
func NewExportService(reports *ReportService, renderers map[Format]Renderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports:   reports,
		renderers: renderers,
		logger:    logger,
	}
}

func (s *ExportService) renderer(format Format) (Renderer, error) {
	r, ok := s.renderers[format]
	if !ok || r == nil {
		return nil, ErrUnsupportedFormat
	}
	return r, nil
}

// ExportStaffTable writes the staff summary of year
func (s *ExportService) ExportStaffTable(ctx context.Context, year string, format Format, w io.Writer) error {
	r, err := s.renderer(format)
	if err != nil {
		return err
	}
	table, err := s.reports.StaffSummary(ctx, year)
	if err != nil {
		return err
	}
	if err := r.RenderStaffTable(ctx, w, table); err != nil {
		return err
	}
	s.logger.Info("staff table exported",
		zap.String("year", year),
		zap.String("format", string(format)),
		zap.Int("rows", len(table.Rows)))
	return nil
}

// ExportPerformance writes the performance report of staffID (all staff when nil)
func (s *ExportService) ExportPerformance(ctx context.Context, staffID *uuid.UUID, format Format, w io.Writer) error {
	r, err := s.renderer(format)
	if err != nil {
		return err
	}
	rep, err := s.reports.PerformanceExport(ctx, staffID)
	if err != nil {
		return err
	}
	if err := r.RenderPerformance(ctx, w, rep); err != nil {
		return err
	}
	fields := []zap.Field{
		zap.String("format", string(format)),
		zap.Int("periods", len(rep.Periods)),
	}
	if staffID != nil {
		fields = append(fields, zap.String("staff_id", staffID.String()))
	}
	s.logger.Info("performance report exported", fields...)
	return nil
}
