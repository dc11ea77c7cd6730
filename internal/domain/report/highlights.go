package report

// Highlights picks the standout staff of a period
type Highlights struct {
	TopProfit         *StaffTotals
	TopProfitPercent  *StaffTotals
	TopExpensePercent *StaffTotals
}

// PickHighlights returns the leader by absolute profit, by profit margin and
// by expense share. All fields are nil for empty input.
func PickHighlights(totals []StaffTotals) Highlights {
	var h Highlights
	if len(totals) == 0 {
		return h
	}
	h.TopProfit = leader(totals, RankByTotalProfit)
	h.TopProfitPercent = leader(totals, RankByProfitPercent)
	h.TopExpensePercent = leader(totals, RankByExpensePercent)
	return h
}

func leader(totals []StaffTotals, m RankMetric) *StaffTotals {
	top := Rank(totals, m)[0].StaffTotals
	return &top
}
