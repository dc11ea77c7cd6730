package report

import (
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// Statistics summarizes a filtered record set
type Statistics struct {
	TotalSales    decimal.Decimal
	TotalProfit   decimal.Decimal
	AverageSales  decimal.Decimal
	AverageProfit decimal.Decimal
	// BestMonth and WorstMonth are the records with the highest and lowest
	// sales; nil for empty input
	BestMonth   *sales.SalesRecord
	WorstMonth  *sales.SalesRecord
	RecordCount int
}

// Summarize computes Statistics; ties on sales keep the earliest record
func Summarize(records []sales.SalesRecord) Statistics {
	var st Statistics
	if len(records) == 0 {
		return st
	}

	best, worst := records[0], records[0]
	for _, r := range records {
		st.TotalSales = st.TotalSales.Add(r.Sales)
		st.TotalProfit = st.TotalProfit.Add(r.Profit())
		if r.Sales.GreaterThan(best.Sales) {
			best = r
		}
		if r.Sales.LessThan(worst.Sales) {
			worst = r
		}
	}

	st.RecordCount = len(records)
	st.AverageSales = average(st.TotalSales, st.RecordCount)
	st.AverageProfit = average(st.TotalProfit, st.RecordCount)
	st.BestMonth = &best
	st.WorstMonth = &worst
	return st
}
