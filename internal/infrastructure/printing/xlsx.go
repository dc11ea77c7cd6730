package printing

import (
	"context"
	"fmt"
	"io"

	"github.com/salesdash/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbooks
const (
	StaffSheet       = "Resumo"
	PerformanceSheet = "Desempenho"
)

// XLSXRenderer writes report documents as Excel workbooks. Amounts are
// stored as numbers with a currency format so they stay usable in formulas.
type XLSXRenderer struct {
	format *Formatter
}

// NewXLSXRenderer creates an XLSXRenderer. A nil formatter means DefaultFormatter.
func NewXLSXRenderer(f *Formatter) *XLSXRenderer {
	if f == nil {
		f = DefaultFormatter()
	}
	return &XLSXRenderer{format: f}
}

// RenderStaffTable writes the staff summary to a single sheet
func (r *XLSXRenderer) RenderStaffTable(_ context.Context, w io.Writer, table *report.StaffTable) error {
	sw, err := r.newSheet(StaffSheet)
	if err != nil {
		return err
	}
	defer sw.file.Close()

	sw.set(1, 1, "Resumo Comparativo de Setoristas - "+r.format.Year(table.Year))
	sw.style(1, 1, 1, sw.styles.title)
	sw.set(1, 2, fmt.Sprintf("Total de %d setoristas analisados", len(table.Rows)))

	headers := []string{"Pos.", "Setorista", "Vendas", "Comissão", "Prêmios", "Despesas", "Lucro (R$)", "Lucro (%)", "Status"}
	sw.header(4, headers)

	row := 5
	for _, sr := range table.Rows {
		sw.set(1, row, sr.Position)
		sw.set(2, row, sr.Label)
		sw.money(3, row, sr.TotalSales)
		sw.money(4, row, sr.TotalCommission)
		sw.money(5, row, sr.TotalBonus)
		sw.money(6, row, sr.TotalExpenses)
		sw.money(7, row, sr.TotalProfit)
		sw.percent(8, row, sr.ProfitPercentOfSales)
		sw.set(9, row, string(sr.Status))
		row++
	}

	row++
	sw.set(1, row, "Critérios de Status")
	sw.style(1, row, 1, sw.styles.bold)
	sw.set(1, row+1, "Ideal: lucro ≥ "+r.format.Percent(table.Thresholds.Ideal)+" das vendas")
	sw.set(1, row+2, "Na média: lucro entre "+r.format.Percent(table.Thresholds.Average)+" e "+r.format.Percent(table.Thresholds.Ideal))
	sw.set(1, row+3, "Precisa melhorar: lucro < "+r.format.Percent(table.Thresholds.Average))
	sw.set(1, row+5, "Relatório gerado em "+r.format.DateTime(table.GeneratedAt))

	sw.widths(map[string]float64{"A": 6, "B": 28, "C": 16, "D": 16, "E": 16, "F": 16, "G": 16, "H": 10, "I": 18})
	return sw.write(w)
}

// RenderPerformance writes one line per period with each metric followed by
// its change against the previous period.
func (r *XLSXRenderer) RenderPerformance(_ context.Context, w io.Writer, rep *report.PerformanceReport) error {
	sw, err := r.newSheet(PerformanceSheet)
	if err != nil {
		return err
	}
	defer sw.file.Close()

	name := rep.StaffName
	if name == "" {
		name = "Todos os Setoristas"
	}
	sw.set(1, 1, "Relatório de Desempenho - "+name)
	sw.style(1, 1, 1, sw.styles.title)

	headers := []string{"Período"}
	for _, m := range report.AllMetrics {
		headers = append(headers, metricLabel(m), "Variação (%)")
	}
	sw.header(3, headers)

	row := 4
	for _, pv := range rep.Periods {
		sw.set(1, row, pv.Period.Label())
		col := 2
		for _, m := range report.AllMetrics {
			d := pv.Delta(m)
			sw.money(col, row, d.Current)
			if !pv.Baseline {
				pct := d.Percent
				if d.Direction == report.DirectionDecrease {
					pct = pct.Neg()
				}
				sw.percent(col+1, row, pct)
			}
			col += 2
		}
		row++
	}

	row++
	for _, line := range []struct {
		label string
		f     report.Figures
	}{{"Total", rep.Totals}, {"Média", rep.Averages}} {
		sw.set(1, row, line.label)
		sw.style(1, row, 1, sw.styles.bold)
		col := 2
		for _, m := range report.AllMetrics {
			sw.money(col, row, line.f.Value(m))
			if m != report.MetricSales {
				sw.percent(col+1, row, line.f.PercentOfSales(m))
			}
			col += 2
		}
		row++
	}
	sw.set(1, row+1, "Relatório gerado em "+r.format.DateTime(rep.GeneratedAt))

	sw.widths(map[string]float64{"A": 22, "B": 16, "D": 16, "F": 16, "H": 16, "J": 16})
	return sw.write(w)
}

func metricLabel(m report.Metric) string {
	switch m {
	case report.MetricSales:
		return "Vendas"
	case report.MetricCommission:
		return "Comissão"
	case report.MetricBonus:
		return "Bônus"
	case report.MetricExpenses:
		return "Despesas"
	case report.MetricProfit:
		return "Lucro Líquido"
	}
	return string(m)
}

type sheetStyles struct {
	title, bold, header, money, percent int
}

// sheetWriter keeps the first error so cell writes read as a flat sequence
type sheetWriter struct {
	file   *excelize.File
	sheet  string
	styles sheetStyles
	err    error
}

func (r *XLSXRenderer) newSheet(name string) (*sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	moneyFmt := fmt.Sprintf(`"%s" #,##0.00;-"%s" #,##0.00`, r.format.Symbol(), r.format.Symbol())
	percentFmt := `0.0"%"`
	specs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true, Size: 14}},
		{Font: &excelize.Font{Bold: true}},
		{
			Font:   &excelize.Font{Bold: true},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
			Border: []excelize.Border{{Type: "bottom", Color: "DDDDDD", Style: 1}},
		},
		{CustomNumFmt: &moneyFmt},
		{CustomNumFmt: &percentFmt},
	}
	ids := make([]int, len(specs))
	for i, s := range specs {
		id, err := f.NewStyle(s)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		ids[i] = id
	}

	return &sheetWriter{
		file:   f,
		sheet:  name,
		styles: sheetStyles{title: ids[0], bold: ids[1], header: ids[2], money: ids[3], percent: ids[4]},
	}, nil
}

func (s *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && s.err == nil {
		s.err = err
	}
	return name
}

func (s *sheetWriter) set(col, row int, value any) {
	if s.err != nil {
		return
	}
	s.err = s.file.SetCellValue(s.sheet, s.cell(col, row), value)
}

func (s *sheetWriter) style(col, row, toCol, style int) {
	if s.err != nil {
		return
	}
	s.err = s.file.SetCellStyle(s.sheet, s.cell(col, row), s.cell(toCol, row), style)
}

func (s *sheetWriter) header(row int, titles []string) {
	for i, t := range titles {
		s.set(i+1, row, t)
	}
	s.style(1, row, len(titles), s.styles.header)
}

func (s *sheetWriter) money(col, row int, d decimal.Decimal) {
	s.set(col, row, d.Round(2).InexactFloat64())
	s.style(col, row, col, s.styles.money)
}

func (s *sheetWriter) percent(col, row int, d decimal.Decimal) {
	s.set(col, row, d.Round(1).InexactFloat64())
	s.style(col, row, col, s.styles.percent)
}

func (s *sheetWriter) widths(cols map[string]float64) {
	for col, width := range cols {
		if s.err != nil {
			return
		}
		s.err = s.file.SetColWidth(s.sheet, col, col, width)
	}
}

func (s *sheetWriter) write(w io.Writer) error {
	if s.err != nil {
		return fmt.Errorf("failed to build sheet %s: %w", s.sheet, s.err)
	}
	if err := s.file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
