package report

import (
	"sort"
	"strings"

	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RankMetric selects the StaffTotals field used for ranking
type RankMetric string

const (
	RankByTotalProfit    RankMetric = "total_profit"
	RankByProfitPercent  RankMetric = "profit_percent"
	RankByExpensePercent RankMetric = "expense_percent"
	RankByTotalSales     RankMetric = "total_sales"
	RankByAverageSales   RankMetric = "average_sales"
	RankByAverageProfit  RankMetric = "average_profit"
	RankByGrowth         RankMetric = "growth"
)

var rankAliases = map[string]RankMetric{
	"vendas":      RankByTotalSales,
	"lucro":       RankByTotalProfit,
	"media":       RankByAverageSales,
	"média":       RankByAverageSales,
	"crescimento": RankByGrowth,
}

// ErrInvalidRankMetric is returned for unknown ranking criteria
var ErrInvalidRankMetric = shared.NewDomainError("INVALID_RANK_METRIC",
	"metric must be one of: total_profit, profit_percent, expense_percent, total_sales, average_sales, average_profit, growth")

// ParseRankMetric accepts a metric name or one of the Portuguese criteria
// (vendas, lucro, media, crescimento)
func ParseRankMetric(s string) (RankMetric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch m := RankMetric(s); m {
	case RankByTotalProfit, RankByProfitPercent, RankByExpensePercent,
		RankByTotalSales, RankByAverageSales, RankByAverageProfit, RankByGrowth:
		return m, nil
	}
	if m, ok := rankAliases[s]; ok {
		return m, nil
	}
	return "", ErrInvalidRankMetric
}

// Value extracts the ranked quantity from t
func (m RankMetric) Value(t StaffTotals) decimal.Decimal {
	switch m {
	case RankByTotalProfit:
		return t.TotalProfit
	case RankByProfitPercent:
		return t.ProfitPercentOfSales
	case RankByExpensePercent:
		return t.ExpensePercentOfSales
	case RankByTotalSales:
		return t.TotalSales
	case RankByAverageSales:
		return t.AverageSales
	case RankByAverageProfit:
		return t.AverageProfit
	case RankByGrowth:
		return t.SalesGrowth
	}
	return decimal.Zero
}

// RankedEntry is a staff aggregate with its 1-based position
type RankedEntry struct {
	Position int
	StaffTotals
}

// Rank orders totals by metric, highest first. Ties keep their input order
// and every entry gets a distinct position. The input is not modified.
func Rank(totals []StaffTotals, metric RankMetric) []RankedEntry {
	sorted := append([]StaffTotals(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return metric.Value(sorted[i]).GreaterThan(metric.Value(sorted[j]))
	})

	out := make([]RankedEntry, len(sorted))
	for i, t := range sorted {
		out[i] = RankedEntry{Position: i + 1, StaffTotals: t}
	}
	return out
}
