package printing

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/salesdash/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	staffTableTemplate  = "staff_table.html"
	performanceTemplate = "performance.html"
)

// HTMLRenderer renders report documents as standalone printable HTML pages
type HTMLRenderer struct {
	format    *Formatter
	templates *template.Template
}

// NewHTMLRenderer parses the embedded templates. A nil formatter means
// DefaultFormatter.
func NewHTMLRenderer(f *Formatter) (*HTMLRenderer, error) {
	if f == nil {
		f = DefaultFormatter()
	}
	tmpl, err := template.New("reports").Funcs(templateFuncs(f)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}
	return &HTMLRenderer{format: f, templates: tmpl}, nil
}

func templateFuncs(f *Formatter) template.FuncMap {
	return template.FuncMap{
		"money":    f.Money,
		"percent":  f.Percent,
		"signed":   f.Signed,
		"datetime": f.DateTime,
		"year":     f.Year,
		"staffName": func(name string) string {
			if name == "" {
				return "Todos os Setoristas"
			}
			return name
		},
		"statusClass": statusClass,
		"profitClass": func(d decimal.Decimal) string {
			if d.IsNegative() {
				return "lucro-negativo"
			}
			return "lucro-positivo"
		},
		"arrow": func(d report.Direction) string {
			switch d {
			case report.DirectionIncrease:
				return "▲"
			case report.DirectionDecrease:
				return "▼"
			}
			return "="
		},
		"prev": func(i int) int { return i - 1 },
		"costMetrics": func() []report.Metric {
			return []report.Metric{report.MetricCommission, report.MetricBonus, report.MetricExpenses}
		},
		"allMetrics": func() []report.Metric { return report.AllMetrics },
	}
}

func statusClass(s report.Status) string {
	switch s {
	case report.StatusIdeal:
		return "status-ideal"
	case report.StatusAverage:
		return "status-media"
	}
	return "status-melhorar"
}

// RenderStaffTable writes the comparative staff summary
func (r *HTMLRenderer) RenderStaffTable(_ context.Context, w io.Writer, table *report.StaffTable) error {
	return r.execute(w, staffTableTemplate, table)
}

// RenderPerformance writes the month-over-month performance report
func (r *HTMLRenderer) RenderPerformance(_ context.Context, w io.Writer, rep *report.PerformanceReport) error {
	return r.execute(w, performanceTemplate, rep)
}

func (r *HTMLRenderer) execute(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
