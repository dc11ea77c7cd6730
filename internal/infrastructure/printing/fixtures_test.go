package printing

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/report"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

var (
	anaID   = uuid.MustParse("6f1c2b7a-0000-4000-8000-000000000001")
	brunoID = uuid.MustParse("6f1c2b7a-0000-4000-8000-000000000002")
	printed = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
)

func record(staffID uuid.UUID, name, month, salesAmt, commission string) sales.SalesRecord {
	return *sales.NewSalesRecordWithID(uuid.New(), staffID, name,
		sales.Period{Month: month, Year: "2024"},
		sales.Amounts{
			Sales:      decimal.RequireFromString(salesAmt),
			Commission: decimal.RequireFromString(commission),
		})
}

func staffTable() *report.StaffTable {
	records := []sales.SalesRecord{
		record(anaID, "Ana", "01", "1000", "0"),
		record(brunoID, "Bruno", "01", "100", "150"),
	}
	return &report.StaffTable{
		Year:        "2024",
		GeneratedAt: printed,
		Thresholds:  report.DefaultThresholds,
		Rows:        report.BuildStaffSummary(records, report.AggregateOptions{}, report.DefaultThresholds),
	}
}

func performanceReport(records ...sales.SalesRecord) *report.PerformanceReport {
	rep := report.BuildPerformanceReport(records, 0)
	rep.GeneratedAt = printed
	return &rep
}
