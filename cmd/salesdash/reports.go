package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	reportapp "github.com/salesdash/backend/internal/application/report"
	"github.com/salesdash/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

func (a *app) reportSummary(ctx context.Context, args []string) error {
	fs := newFlagSet("report summary")
	year := fs.String("year", "", "year, empty for all")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tbl, err := a.reports.StaffSummary(ctx, *year)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Staff summary - %s (%d staff)\n\n", a.format.Year(tbl.Year), len(tbl.Rows))
	if len(tbl.Rows) == 0 {
		fmt.Fprintln(a.out, "No sales records found.")
		return nil
	}

	t := newTable(a.out, "POS", "STAFF", "SALES", "COMMISSION", "BONUS", "EXPENSES", "PROFIT", "PROFIT %", "STATUS")
	for _, r := range tbl.Rows {
		t.row(strconv.Itoa(r.Position), r.Label,
			a.format.Money(r.TotalSales), a.format.Money(r.TotalCommission), a.format.Money(r.TotalBonus),
			a.format.Money(r.TotalExpenses), a.format.Money(r.TotalProfit),
			a.format.Percent(r.ProfitPercentOfSales), string(r.Status))
	}
	return t.flush()
}

func (a *app) reportHighlights(ctx context.Context, args []string) error {
	fs := newFlagSet("report highlights")
	year := fs.String("year", "", "year, empty for all")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	h, err := a.reports.Highlights(ctx, *year)
	if err != nil {
		return err
	}
	t := newTable(a.out, "HIGHLIGHT", "STAFF", "VALUE")
	a.highlight(t, "Highest profit", h.TopProfit, func(s *report.StaffTotals) string {
		return a.format.Money(s.TotalProfit)
	})
	a.highlight(t, "Best profit margin", h.TopProfitPercent, func(s *report.StaffTotals) string {
		return a.format.Percent(s.ProfitPercentOfSales)
	})
	a.highlight(t, "Highest expense share", h.TopExpensePercent, func(s *report.StaffTotals) string {
		return a.format.Percent(s.ExpensePercentOfSales)
	})
	return t.flush()
}

func (a *app) highlight(t *table, label string, s *report.StaffTotals, value func(*report.StaffTotals) string) {
	if s == nil {
		t.row(label, "-", "-")
		return
	}
	t.row(label, s.Label, value(s))
}

func (a *app) reportRanking(ctx context.Context, args []string) error {
	fs := newFlagSet("report ranking")
	year := fs.String("year", "", "year, empty for all")
	by := fs.String("by", string(report.RankByTotalProfit), "ranking metric")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	entries, err := a.reports.Ranking(ctx, *year, *by)
	if err != nil {
		return err
	}
	metric, _ := report.ParseRankMetric(*by)

	t := newTable(a.out, "POS", "STAFF", string(metric))
	for _, e := range entries {
		t.row(strconv.Itoa(e.Position), e.Label, a.rankValue(metric, metric.Value(e.StaffTotals)))
	}
	return t.flush()
}

func (a *app) rankValue(m report.RankMetric, v decimal.Decimal) string {
	switch m {
	case report.RankByProfitPercent, report.RankByExpensePercent, report.RankByGrowth:
		return a.format.Percent(v)
	}
	return a.format.Money(v)
}

func (a *app) reportPerformance(ctx context.Context, args []string) error {
	fs := newFlagSet("report performance")
	rawID := fs.String("staff", "", "staff ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := parseID("staff", *rawID)
	if err != nil {
		return err
	}

	perf, err := a.reports.MonthlyPerformance(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Monthly performance - %s\n\n", perf.StaffName)
	if len(perf.Periods) == 0 {
		fmt.Fprintln(a.out, "No sales records found.")
		return nil
	}

	headers := []string{"PERIOD"}
	for _, m := range report.AllMetrics {
		headers = append(headers, string(m))
	}
	t := newTable(a.out, headers...)
	for _, pv := range perf.Periods {
		cells := []string{pv.Period.String()}
		for _, m := range report.AllMetrics {
			cells = append(cells, a.deltaCell(pv, m))
		}
		t.row(cells...)
	}
	return t.flush()
}

func (a *app) deltaCell(pv report.PeriodVariance, m report.Metric) string {
	d := pv.Delta(m)
	if pv.Baseline {
		return a.format.Money(d.Current)
	}
	sign := ""
	switch d.Direction {
	case report.DirectionIncrease:
		sign = "+"
	case report.DirectionDecrease:
		sign = "-"
	}
	return fmt.Sprintf("%s (%s%s)", a.format.Money(d.Current), sign, a.format.Percent(d.Percent))
}

func (a *app) reportAnalysis(ctx context.Context, args []string) error {
	fs := newFlagSet("report analysis")
	year := fs.String("year", "", "year, empty for all")
	name := fs.String("name", "", "staff name, empty for everyone")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	an, err := a.reports.Analysis(ctx, *year, *name)
	if err != nil {
		return err
	}
	who := an.StaffName
	if who == "" {
		who = "Todos os Setoristas"
	}
	fmt.Fprintf(a.out, "Analysis - %s - %s\n\n", who, a.format.Year(an.Year))

	st := an.Statistics
	t := newTable(a.out, "RECORDS", "TOTAL SALES", "TOTAL PROFIT", "AVERAGE SALES", "AVERAGE PROFIT")
	t.row(strconv.Itoa(st.RecordCount), a.format.Money(st.TotalSales), a.format.Money(st.TotalProfit),
		a.format.Money(st.AverageSales), a.format.Money(st.AverageProfit))
	if err := t.flush(); err != nil {
		return err
	}
	if st.BestMonth != nil {
		fmt.Fprintf(a.out, "\nBest month:  %s %s %s\n", st.BestMonth.StaffName,
			st.BestMonth.Period().String(), a.format.Money(st.BestMonth.Sales))
		fmt.Fprintf(a.out, "Worst month: %s %s %s\n", st.WorstMonth.StaffName,
			st.WorstMonth.Period().String(), a.format.Money(st.WorstMonth.Sales))
	}

	if len(an.Series) > 0 {
		fmt.Fprintln(a.out)
		t = newTable(a.out, "PERIOD", "SALES", "EXPENSES", "PROFIT", "RECORDS")
		for _, m := range an.Series {
			t.row(m.Period.String(), a.format.Money(m.Sales), a.format.Money(m.Expenses),
				a.format.Money(m.Profit), strconv.Itoa(m.RecordCount))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	if len(an.Ratings) > 0 {
		fmt.Fprintln(a.out)
		t = newTable(a.out, "PERIOD", "SALES", "RATING")
		for _, r := range an.Ratings {
			t.row(r.Record.Period().String(), a.format.Money(r.Record.Sales), string(r.Rating))
		}
		return t.flush()
	}
	return nil
}

func (a *app) reportYears(ctx context.Context, args []string) error {
	if err := parseFlags(newFlagSet("report years"), args); err != nil {
		return err
	}
	years, err := a.records.Years(ctx)
	if err != nil {
		return err
	}
	for _, y := range years {
		fmt.Fprintln(a.out, y)
	}
	return nil
}

// exportFlags are shared by the export commands. The format defaults to the
// extension of -out.
type exportFlags struct {
	out    string
	format string
}

func (e *exportFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&e.out, "out", "", "output file")
	fs.StringVar(&e.format, "format", "", "html, xlsx or pdf")
}

func (e *exportFlags) resolve() (reportapp.Format, error) {
	if e.out == "" {
		return "", errUsage
	}
	raw := e.format
	if raw == "" {
		raw = filepath.Ext(e.out)
	}
	return reportapp.ParseFormat(raw)
}

func (a *app) exportStaff(ctx context.Context, args []string) error {
	fs := newFlagSet("export staff")
	year := fs.String("year", "", "year, empty for all")
	var ef exportFlags
	ef.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	format, err := ef.resolve()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := a.exports.ExportStaffTable(ctx, *year, format, &buf); err != nil {
		return err
	}
	return a.writeExport(ef.out, buf.Bytes())
}

func (a *app) exportPerformance(ctx context.Context, args []string) error {
	fs := newFlagSet("export performance")
	rawID := fs.String("staff", "", "staff ID, empty for every record")
	var ef exportFlags
	ef.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	format, err := ef.resolve()
	if err != nil {
		return err
	}

	var staffID *uuid.UUID
	if *rawID != "" {
		id, err := parseID("staff", *rawID)
		if err != nil {
			return err
		}
		staffID = &id
	}

	var buf bytes.Buffer
	if err := a.exports.ExportPerformance(ctx, staffID, format, &buf); err != nil {
		return err
	}
	return a.writeExport(ef.out, buf.Bytes())
}

// writeExport only creates the file once rendering succeeded
func (a *app) writeExport(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Report written to %s\n", path)
	return nil
}
