package report

import (
	"sort"

	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GroupBy selects how records are bucketed into staff groups
type GroupBy string

const (
	// GroupByStaffID keys on the staff ID plus display name
	GroupByStaffID GroupBy = "staff_id"
	// GroupByName keys on the display name alone, merging members that share it
	GroupByName GroupBy = "name"
)

// ParseGroupBy validates a configured grouping mode; blank means GroupByStaffID
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case "", GroupByStaffID:
		return GroupByStaffID, nil
	case GroupByName:
		return GroupByName, nil
	}
	return "", shared.NewDomainError("INVALID_GROUP_BY", "group_by must be one of: name, staff_id")
}

// AggregateOptions configures AggregateByStaff
type AggregateOptions struct {
	GroupBy GroupBy
}

// StaffTotals is the per-staff aggregate of a set of records
type StaffTotals struct {
	Key     string
	StaffID string
	Label   string

	TotalSales      decimal.Decimal
	TotalCommission decimal.Decimal
	TotalBonus      decimal.Decimal
	TotalExpenses   decimal.Decimal
	TotalProfit     decimal.Decimal
	RecordCount     int

	ProfitPercentOfSales  decimal.Decimal
	ExpensePercentOfSales decimal.Decimal

	AverageSales      decimal.Decimal
	AverageCommission decimal.Decimal
	AverageBonus      decimal.Decimal
	AverageExpenses   decimal.Decimal
	AverageProfit     decimal.Decimal

	// SalesGrowth is the signed percent change in sales between the first
	// and the last period of the group
	SalesGrowth decimal.Decimal

	// Periods lists the distinct periods covered, chronologically
	Periods []sales.Period
}

// StaffGrouping holds staff totals in first-seen key order
type StaffGrouping struct {
	keys   []string
	groups map[string]*StaffTotals
}

// Totals returns a copy of every group in first-seen order
func (g *StaffGrouping) Totals() []StaffTotals {
	out := make([]StaffTotals, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, *g.groups[k])
	}
	return out
}

// Get returns the totals stored under key
func (g *StaffGrouping) Get(key string) (StaffTotals, bool) {
	t, ok := g.groups[key]
	if !ok {
		return StaffTotals{}, false
	}
	return *t, true
}

// Len returns the number of groups
func (g *StaffGrouping) Len() int {
	return len(g.keys)
}

// Keys returns group keys in first-seen order
func (g *StaffGrouping) Keys() []string {
	return append([]string(nil), g.keys...)
}

// GroupKey returns the key a record falls under for the given mode
func GroupKey(r sales.SalesRecord, by GroupBy) string {
	if by == GroupByName {
		return r.StaffName
	}
	return r.StaffID.String() + ":" + r.StaffName
}

// AggregateByStaff folds records into per-staff totals.
// Profit is recomputed from each record's amounts; the stored NetProfit is
// never read. The input slice is not modified.
func AggregateByStaff(records []sales.SalesRecord, opts AggregateOptions) *StaffGrouping {
	by := opts.GroupBy
	if by == "" {
		by = GroupByStaffID
	}

	g := &StaffGrouping{groups: make(map[string]*StaffTotals)}
	periodSales := make(map[string]map[sales.Period]decimal.Decimal)

	for _, r := range records {
		key := GroupKey(r, by)
		t, ok := g.groups[key]
		if !ok {
			t = &StaffTotals{Key: key, Label: r.StaffName}
			if by == GroupByStaffID {
				t.StaffID = r.StaffID.String()
			}
			g.groups[key] = t
			g.keys = append(g.keys, key)
			periodSales[key] = make(map[sales.Period]decimal.Decimal)
		}

		t.TotalSales = t.TotalSales.Add(r.Sales)
		t.TotalCommission = t.TotalCommission.Add(r.Commission)
		t.TotalBonus = t.TotalBonus.Add(r.Bonus)
		t.TotalExpenses = t.TotalExpenses.Add(r.Expenses)
		t.TotalProfit = t.TotalProfit.Add(r.Profit())
		t.RecordCount++

		p := r.Period()
		periodSales[key][p] = periodSales[key][p].Add(r.Sales)
	}

	for _, k := range g.keys {
		finalize(g.groups[k], periodSales[k])
	}
	return g
}

func finalize(t *StaffTotals, bySales map[sales.Period]decimal.Decimal) {
	t.ProfitPercentOfSales = PercentOf(t.TotalProfit, t.TotalSales)
	t.ExpensePercentOfSales = PercentOf(t.TotalExpenses, t.TotalSales)

	t.AverageSales = average(t.TotalSales, t.RecordCount)
	t.AverageCommission = average(t.TotalCommission, t.RecordCount)
	t.AverageBonus = average(t.TotalBonus, t.RecordCount)
	t.AverageExpenses = average(t.TotalExpenses, t.RecordCount)
	t.AverageProfit = average(t.TotalProfit, t.RecordCount)

	t.Periods = make([]sales.Period, 0, len(bySales))
	for p := range bySales {
		t.Periods = append(t.Periods, p)
	}
	sort.Slice(t.Periods, func(i, j int) bool { return t.Periods[i].Before(t.Periods[j]) })

	if len(t.Periods) > 1 {
		first := bySales[t.Periods[0]]
		last := bySales[t.Periods[len(t.Periods)-1]]
		t.SalesGrowth = ChangePercent(last, first)
	}
}

// PercentOf returns part/whole*100, or zero when whole is zero
func PercentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// ChangePercent returns the signed percent change from previous to current,
// or zero when previous is zero
func ChangePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

// MonthTotals sums every record of one period
type MonthTotals struct {
	Period      sales.Period
	Sales       decimal.Decimal
	Commission  decimal.Decimal
	Bonus       decimal.Decimal
	Expenses    decimal.Decimal
	Profit      decimal.Decimal
	RecordCount int
}

// AggregateByMonth sums records per period, chronologically
func AggregateByMonth(records []sales.SalesRecord) []MonthTotals {
	idx := make(map[sales.Period]int)
	var out []MonthTotals
	for _, r := range records {
		p := r.Period()
		i, ok := idx[p]
		if !ok {
			i = len(out)
			idx[p] = i
			out = append(out, MonthTotals{Period: p})
		}
		m := &out[i]
		m.Sales = m.Sales.Add(r.Sales)
		m.Commission = m.Commission.Add(r.Commission)
		m.Bonus = m.Bonus.Add(r.Bonus)
		m.Expenses = m.Expenses.Add(r.Expenses)
		m.Profit = m.Profit.Add(r.Profit())
		m.RecordCount++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}
