package printing

import (
	"bytes"
	"context"
	"io"

	"github.com/salesdash/backend/internal/domain/report"
)

// PDFRenderer prints the HTML documents through an HTMLPrinter
type PDFRenderer struct {
	html    *HTMLRenderer
	printer HTMLPrinter
	margins Margins
}

// NewPDFRenderer creates a PDFRenderer
func NewPDFRenderer(html *HTMLRenderer, printer HTMLPrinter) *PDFRenderer {
	return &PDFRenderer{html: html, printer: printer, margins: DefaultMargins()}
}

// RenderStaffTable prints the staff summary on landscape A4, which fits
// the nine columns.
func (r *PDFRenderer) RenderStaffTable(ctx context.Context, w io.Writer, table *report.StaffTable) error {
	var buf bytes.Buffer
	if err := r.html.RenderStaffTable(ctx, &buf, table); err != nil {
		return err
	}
	return r.print(ctx, w, buf.String(), PageSetup{Landscape: true, Margins: r.margins})
}

// RenderPerformance prints the performance report on portrait A4
func (r *PDFRenderer) RenderPerformance(ctx context.Context, w io.Writer, rep *report.PerformanceReport) error {
	var buf bytes.Buffer
	if err := r.html.RenderPerformance(ctx, &buf, rep); err != nil {
		return err
	}
	return r.print(ctx, w, buf.String(), PageSetup{Margins: r.margins, FooterHTML: pageNumberFooter})
}

const pageNumberFooter = `<div style="font-size:8px;width:100%;text-align:center;color:#666;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

func (r *PDFRenderer) print(ctx context.Context, w io.Writer, html string, setup PageSetup) error {
	res, err := r.printer.Print(ctx, html, setup)
	if err != nil {
		return err
	}
	_, err = w.Write(res.PDFData)
	return err
}

// Close releases the printer
func (r *PDFRenderer) Close() error {
	return r.printer.Close()
}
