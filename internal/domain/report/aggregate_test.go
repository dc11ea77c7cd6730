package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateByStaff(t *testing.T) {
	ana, bruno := uuid.New(), uuid.New()

	t.Run("empty input gives empty grouping", func(t *testing.T) {
		g := AggregateByStaff(nil, AggregateOptions{})
		require.NotNil(t, g)
		assert.Equal(t, 0, g.Len())
		assert.Empty(t, g.Totals())
		assert.Empty(t, g.Keys())
	})

	t.Run("sums fields and derives percentages", func(t *testing.T) {
		records := []sales.SalesRecord{
			rec(ana, "Ana", "01", "2024", "1000", "100", "50", "150"),
			rec(ana, "Ana", "02", "2024", "3000", "300", "0", "250"),
		}
		g := AggregateByStaff(records, AggregateOptions{GroupBy: GroupByStaffID})
		require.Equal(t, 1, g.Len())

		tot := g.Totals()[0]
		assert.Equal(t, ana.String(), tot.StaffID)
		assert.Equal(t, "Ana", tot.Label)
		assert.Equal(t, 2, tot.RecordCount)
		assert.True(t, tot.TotalSales.Equal(d("4000")))
		assert.True(t, tot.TotalCommission.Equal(d("400")))
		assert.True(t, tot.TotalBonus.Equal(d("50")))
		assert.True(t, tot.TotalExpenses.Equal(d("400")))
		assert.True(t, tot.TotalProfit.Equal(d("3150")))
		assert.True(t, tot.ProfitPercentOfSales.Equal(d("78.75")), "got %s", tot.ProfitPercentOfSales)
		assert.True(t, tot.ExpensePercentOfSales.Equal(d("10")))
		assert.True(t, tot.AverageSales.Equal(d("2000")))
		assert.True(t, tot.AverageProfit.Equal(d("1575")))
		assert.True(t, tot.SalesGrowth.Equal(d("200")))
		assert.Equal(t, []sales.Period{{Month: "01", Year: "2024"}, {Month: "02", Year: "2024"}}, tot.Periods)
	})

	t.Run("group profit equals sum of record profits", func(t *testing.T) {
		records := []sales.SalesRecord{
			rec(ana, "Ana", "01", "2024", "1000", "100", "20", "30"),
			rec(bruno, "Bruno", "01", "2024", "700.55", "70", "0", "12.30"),
			rec(ana, "Ana", "02", "2024", "200", "250", "0", "0"),
			rec(bruno, "Bruno", "03", "2024", "0", "0", "10", "5"),
		}
		want := decimal.Zero
		for _, r := range records {
			want = want.Add(sales.ComputeNetProfit(r.Sales, r.Commission, r.Bonus, r.Expenses))
		}

		got := decimal.Zero
		for _, tot := range AggregateByStaff(records, AggregateOptions{}).Totals() {
			got = got.Add(tot.TotalProfit)
		}
		assert.True(t, got.Equal(want), "got %s want %s", got, want)
	})

	t.Run("stale stored profit does not leak into totals", func(t *testing.T) {
		r := rec(ana, "Ana", "01", "2024", "1000", "100", "100", "100")
		r.NetProfit = d("1200")
		tot := AggregateByStaff([]sales.SalesRecord{r}, AggregateOptions{}).Totals()[0]
		assert.True(t, tot.TotalProfit.Equal(d("700")))
	})

	t.Run("keeps first-seen order", func(t *testing.T) {
		records := []sales.SalesRecord{
			salesOnly(bruno, "Bruno", "01", "2024", "10"),
			salesOnly(ana, "Ana", "01", "2024", "20"),
			salesOnly(bruno, "Bruno", "02", "2024", "10"),
		}
		g := AggregateByStaff(records, AggregateOptions{})
		totals := g.Totals()
		require.Len(t, totals, 2)
		assert.Equal(t, "Bruno", totals[0].Label)
		assert.Equal(t, "Ana", totals[1].Label)
		assert.Equal(t, []string{bruno.String() + ":Bruno", ana.String() + ":Ana"}, g.Keys())

		got, ok := g.Get(ana.String() + ":Ana")
		require.True(t, ok)
		assert.True(t, got.TotalSales.Equal(d("20")))
		_, ok = g.Get("missing")
		assert.False(t, ok)
	})

	t.Run("name grouping merges members sharing a name", func(t *testing.T) {
		other := uuid.New()
		records := []sales.SalesRecord{
			salesOnly(ana, "Ana", "01", "2024", "100"),
			salesOnly(other, "Ana", "01", "2024", "50"),
		}
		byID := AggregateByStaff(records, AggregateOptions{GroupBy: GroupByStaffID})
		assert.Equal(t, 2, byID.Len())

		byName := AggregateByStaff(records, AggregateOptions{GroupBy: GroupByName})
		require.Equal(t, 1, byName.Len())
		tot := byName.Totals()[0]
		assert.Equal(t, "Ana", tot.Key)
		assert.Empty(t, tot.StaffID)
		assert.True(t, tot.TotalSales.Equal(d("150")))
		assert.Len(t, tot.Periods, 1)
	})

	t.Run("zero sales keeps percentages at zero", func(t *testing.T) {
		records := []sales.SalesRecord{rec(ana, "Ana", "01", "2024", "0", "10", "0", "5")}
		tot := AggregateByStaff(records, AggregateOptions{}).Totals()[0]
		assert.True(t, tot.ProfitPercentOfSales.IsZero())
		assert.True(t, tot.ExpensePercentOfSales.IsZero())
		assert.True(t, tot.TotalProfit.Equal(d("-15")))
	})

	t.Run("does not modify input", func(t *testing.T) {
		records := []sales.SalesRecord{
			salesOnly(ana, "Ana", "03", "2024", "10"),
			salesOnly(ana, "Ana", "01", "2024", "20"),
		}
		AggregateByStaff(records, AggregateOptions{})
		assert.Equal(t, "03", records[0].Month)
		assert.Equal(t, "01", records[1].Month)
	})
}

func TestSalesGrowth(t *testing.T) {
	ana := uuid.New()

	t.Run("uses chronological first and last period", func(t *testing.T) {
		records := []sales.SalesRecord{
			salesOnly(ana, "Ana", "03", "2024", "150"),
			salesOnly(ana, "Ana", "01", "2024", "100"),
			salesOnly(ana, "Ana", "02", "2024", "900"),
		}
		tot := AggregateByStaff(records, AggregateOptions{}).Totals()[0]
		assert.True(t, tot.SalesGrowth.Equal(d("50")), "got %s", tot.SalesGrowth)
	})

	t.Run("signed when sales fall", func(t *testing.T) {
		records := []sales.SalesRecord{
			salesOnly(ana, "Ana", "01", "2024", "200"),
			salesOnly(ana, "Ana", "02", "2024", "150"),
		}
		tot := AggregateByStaff(records, AggregateOptions{}).Totals()[0]
		assert.True(t, tot.SalesGrowth.Equal(d("-25")))
	})

	t.Run("single period is zero", func(t *testing.T) {
		tot := AggregateByStaff([]sales.SalesRecord{salesOnly(ana, "Ana", "01", "2024", "200")}, AggregateOptions{}).Totals()[0]
		assert.True(t, tot.SalesGrowth.IsZero())
	})

	t.Run("zero first period is zero", func(t *testing.T) {
		records := []sales.SalesRecord{
			salesOnly(ana, "Ana", "01", "2024", "0"),
			salesOnly(ana, "Ana", "02", "2024", "500"),
		}
		tot := AggregateByStaff(records, AggregateOptions{}).Totals()[0]
		assert.True(t, tot.SalesGrowth.IsZero())
	})
}

func TestParseGroupBy(t *testing.T) {
	g, err := ParseGroupBy("")
	require.NoError(t, err)
	assert.Equal(t, GroupByStaffID, g)

	g, err = ParseGroupBy("name")
	require.NoError(t, err)
	assert.Equal(t, GroupByName, g)

	_, err = ParseGroupBy("team")
	assert.Error(t, err)
}

func TestAggregateByMonth(t *testing.T) {
	ana, bruno := uuid.New(), uuid.New()
	records := []sales.SalesRecord{
		rec(ana, "Ana", "02", "2024", "200", "20", "0", "0"),
		rec(bruno, "Bruno", "01", "2024", "100", "0", "10", "0"),
		rec(bruno, "Bruno", "02", "2024", "50", "0", "0", "5"),
	}
	months := AggregateByMonth(records)
	require.Len(t, months, 2)

	assert.Equal(t, "01", months[0].Period.Month)
	assert.True(t, months[0].Sales.Equal(d("100")))
	assert.True(t, months[0].Profit.Equal(d("90")))
	assert.Equal(t, 1, months[0].RecordCount)

	assert.Equal(t, "02", months[1].Period.Month)
	assert.True(t, months[1].Sales.Equal(d("250")))
	assert.True(t, months[1].Profit.Equal(d("225")))
	assert.Equal(t, 2, months[1].RecordCount)

	assert.Empty(t, AggregateByMonth(nil))
}

func TestPercentHelpers(t *testing.T) {
	assert.True(t, PercentOf(d("25"), d("200")).Equal(d("12.5")))
	assert.True(t, PercentOf(d("25"), decimal.Zero).IsZero())
	assert.True(t, ChangePercent(d("150"), d("100")).Equal(d("50")))
	assert.True(t, ChangePercent(d("150"), decimal.Zero).IsZero())
}
