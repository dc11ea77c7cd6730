package report

import (
	"sort"

	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// Metric names a per-record figure tracked by the variance chain
type Metric string

const (
	MetricSales      Metric = "sales"
	MetricCommission Metric = "commission"
	MetricBonus      Metric = "bonus"
	MetricExpenses   Metric = "expenses"
	MetricProfit     Metric = "profit"
)

// AllMetrics lists every metric in display order
var AllMetrics = []Metric{MetricSales, MetricCommission, MetricBonus, MetricExpenses, MetricProfit}

// Value extracts the metric from a record. Profit is always recomputed.
func (m Metric) Value(r sales.SalesRecord) decimal.Decimal {
	switch m {
	case MetricSales:
		return r.Sales
	case MetricCommission:
		return r.Commission
	case MetricBonus:
		return r.Bonus
	case MetricExpenses:
		return r.Expenses
	case MetricProfit:
		return r.Profit()
	}
	return decimal.Zero
}

// Direction is the sign of a period-over-period change
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionFlat     Direction = "flat"
)

// Delta compares one metric between two consecutive periods
type Delta struct {
	Current  decimal.Decimal
	Previous decimal.Decimal
	// Percent is the unsigned percent change; Direction carries the sign
	Percent   decimal.Decimal
	Absolute  decimal.Decimal
	Direction Direction
}

// Variance compares current with previous.
// A zero previous value yields a zero percent and a flat direction.
func Variance(current, previous decimal.Decimal) Delta {
	d := Delta{
		Current:   current,
		Previous:  previous,
		Percent:   decimal.Zero,
		Absolute:  current.Sub(previous),
		Direction: DirectionFlat,
	}
	if previous.IsZero() {
		return d
	}

	ratio := current.Sub(previous).Div(previous)
	switch ratio.Sign() {
	case 1:
		d.Direction = DirectionIncrease
	case -1:
		d.Direction = DirectionDecrease
	}
	d.Percent = ratio.Mul(hundred).Abs()
	return d
}

// PeriodVariance is one step of a variance chain
type PeriodVariance struct {
	Period   sales.Period
	Record   sales.SalesRecord
	Baseline bool
	Deltas   map[Metric]Delta
}

// Delta returns the change for m, or a flat zero delta on the baseline
func (pv PeriodVariance) Delta(m Metric) Delta {
	if d, ok := pv.Deltas[m]; ok {
		return d
	}
	v := m.Value(pv.Record)
	return Delta{Current: v, Previous: v, Direction: DirectionFlat}
}

// SortChronologically returns a copy of records ordered by year then month.
// Records sharing a period keep their relative order.
func SortChronologically(records []sales.SalesRecord) []sales.SalesRecord {
	out := append([]sales.SalesRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period().Before(out[j].Period()) })
	return out
}

// VarianceChain compares each period of one staff member's records with the
// period before it. The first period is the baseline and carries no deltas.
// With no metrics given every metric is compared.
func VarianceChain(records []sales.SalesRecord, metrics ...Metric) []PeriodVariance {
	if len(metrics) == 0 {
		metrics = AllMetrics
	}

	sorted := SortChronologically(records)
	chain := make([]PeriodVariance, 0, len(sorted))
	for i, r := range sorted {
		pv := PeriodVariance{
			Period: r.Period(),
			Record: r,
			Deltas: make(map[Metric]Delta, len(metrics)),
		}
		if i == 0 {
			pv.Baseline = true
			chain = append(chain, pv)
			continue
		}
		prev := sorted[i-1]
		for _, m := range metrics {
			pv.Deltas[m] = Variance(m.Value(r), m.Value(prev))
		}
		chain = append(chain, pv)
	}
	return chain
}
