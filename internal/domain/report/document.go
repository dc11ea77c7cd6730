package report

import (
	"time"

	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// Figures holds one value per metric
type Figures struct {
	Sales      decimal.Decimal
	Commission decimal.Decimal
	Bonus      decimal.Decimal
	Expenses   decimal.Decimal
	Profit     decimal.Decimal
}

// FiguresOf returns a record's figures with profit recomputed
func FiguresOf(r sales.SalesRecord) Figures {
	return Figures{
		Sales:      r.Sales,
		Commission: r.Commission,
		Bonus:      r.Bonus,
		Expenses:   r.Expenses,
		Profit:     r.Profit(),
	}
}

// Value returns the figure for m
func (f Figures) Value(m Metric) decimal.Decimal {
	switch m {
	case MetricSales:
		return f.Sales
	case MetricCommission:
		return f.Commission
	case MetricBonus:
		return f.Bonus
	case MetricExpenses:
		return f.Expenses
	case MetricProfit:
		return f.Profit
	}
	return decimal.Zero
}

// PercentOfSales returns the figure for m as a percent of Sales
func (f Figures) PercentOfSales(m Metric) decimal.Decimal {
	return PercentOf(f.Value(m), f.Sales)
}

func (f Figures) add(o Figures) Figures {
	return Figures{
		Sales:      f.Sales.Add(o.Sales),
		Commission: f.Commission.Add(o.Commission),
		Bonus:      f.Bonus.Add(o.Bonus),
		Expenses:   f.Expenses.Add(o.Expenses),
		Profit:     f.Profit.Add(o.Profit),
	}
}

func (f Figures) div(n int) Figures {
	return Figures{
		Sales:      average(f.Sales, n),
		Commission: average(f.Commission, n),
		Bonus:      average(f.Bonus, n),
		Expenses:   average(f.Expenses, n),
		Profit:     average(f.Profit, n),
	}
}

// SummaryRow is one line of the staff summary table
type SummaryRow struct {
	Position int
	Status   Status
	StaffTotals
}

// StaffTable is the printable staff summary of a year (all years when Year
// is empty)
type StaffTable struct {
	Year        string
	GeneratedAt time.Time
	Thresholds  Thresholds
	Rows        []SummaryRow
}

// BuildStaffSummary aggregates records per staff, orders the groups by
// total profit and grades each one against th.
func BuildStaffSummary(records []sales.SalesRecord, opts AggregateOptions, th Thresholds) []SummaryRow {
	ranked := Rank(AggregateByStaff(records, opts).Totals(), RankByTotalProfit)
	rows := make([]SummaryRow, len(ranked))
	for i, e := range ranked {
		rows[i] = SummaryRow{
			Position:    e.Position,
			Status:      Classify(e.ProfitPercentOfSales, th),
			StaffTotals: e.StaffTotals,
		}
	}
	return rows
}

// PerformanceReport covers the most recent periods of a record set
type PerformanceReport struct {
	// StaffName is empty when the records span several staff members
	StaffName   string
	GeneratedAt time.Time
	Periods     []PeriodVariance
	Totals      Figures
	Averages    Figures
}

// BuildPerformanceReport keeps the last n periods of records (all when n is
// not positive), then totals, averages and chains them chronologically.
func BuildPerformanceReport(records []sales.SalesRecord, n int) PerformanceReport {
	sorted := SortChronologically(records)
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}

	var rep PerformanceReport
	if len(sorted) == 0 {
		return rep
	}
	rep.StaffName = sorted[0].StaffName
	for _, r := range sorted {
		if r.StaffName != rep.StaffName {
			rep.StaffName = ""
		}
		rep.Totals = rep.Totals.add(FiguresOf(r))
	}
	rep.Averages = rep.Totals.div(len(sorted))
	rep.Periods = VarianceChain(sorted)
	return rep
}
