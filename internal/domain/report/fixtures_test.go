package report

import (
	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rec(staffID uuid.UUID, name, month, year, salesAmt, commission, bonus, expenses string) sales.SalesRecord {
	return *sales.NewSalesRecordWithID(uuid.New(), staffID, name,
		sales.Period{Month: month, Year: year},
		sales.Amounts{Sales: d(salesAmt), Commission: d(commission), Bonus: d(bonus), Expenses: d(expenses)})
}

func salesOnly(staffID uuid.UUID, name, month, year, amount string) sales.SalesRecord {
	return rec(staffID, name, month, year, amount, "0", "0", "0")
}
