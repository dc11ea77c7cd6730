// Package printing turns report documents into files.
//
// This package contains:
//   - Formatter for locale-aware money, percent and date text
//   - HTMLRenderer producing printable HTML pages from embedded templates
//   - XLSXRenderer producing spreadsheets with excelize
//   - PDFRenderer printing the HTML pages through Chrome via chromedp
//
// Every renderer implements the export Renderer contract of the report
// application service:
//
//	f, _ := NewFormatter("pt-BR", "BRL")
//	html := NewHTMLRenderer(f)
//	err := html.RenderStaffTable(ctx, w, table)
package printing
