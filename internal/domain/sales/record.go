package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amounts holds the money figures of one month of work
type Amounts struct {
	Sales      decimal.Decimal
	Commission decimal.Decimal
	Bonus      decimal.Decimal
	Expenses   decimal.Decimal
}

// NetProfit applies the canonical formula to the amounts
func (a Amounts) NetProfit() decimal.Decimal {
	return ComputeNetProfit(a.Sales, a.Commission, a.Bonus, a.Expenses)
}

// SalesRecord is one staff member's figures for one month.
// Records are added and deleted, never edited.
type SalesRecord struct {
	ID         uuid.UUID
	StaffID    uuid.UUID
	StaffName  string // copied from the staff member at creation
	Month      string
	Year       string
	Sales      decimal.Decimal
	Commission decimal.Decimal
	Bonus      decimal.Decimal
	Expenses   decimal.Decimal
	NetProfit  decimal.Decimal
	CreatedAt  time.Time
}

// NewSalesRecord creates a record for staff in period with NetProfit computed
func NewSalesRecord(staff *StaffMember, period Period, amounts Amounts) (*SalesRecord, error) {
	if staff == nil {
		return nil, ErrStaffRequired
	}
	return NewSalesRecordWithID(uuid.New(), staff.ID, staff.Name, period, amounts), nil
}

// NewSalesRecordWithID builds a record around a known ID and staff reference.
// The period is assumed to be validated already.
func NewSalesRecordWithID(id, staffID uuid.UUID, staffName string, period Period, amounts Amounts) *SalesRecord {
	return &SalesRecord{
		ID:         id,
		StaffID:    staffID,
		StaffName:  staffName,
		Month:      period.Month,
		Year:       period.Year,
		Sales:      amounts.Sales,
		Commission: amounts.Commission,
		Bonus:      amounts.Bonus,
		Expenses:   amounts.Expenses,
		NetProfit:  amounts.NetProfit(),
		CreatedAt:  time.Now(),
	}
}

// Period returns the record's month/year
func (r SalesRecord) Period() Period {
	return Period{Month: r.Month, Year: r.Year}
}

// Amounts returns the record's money figures
func (r SalesRecord) Amounts() Amounts {
	return Amounts{Sales: r.Sales, Commission: r.Commission, Bonus: r.Bonus, Expenses: r.Expenses}
}

// Profit recomputes net profit from the amounts, ignoring the stored NetProfit
func (r SalesRecord) Profit() decimal.Decimal {
	return ComputeNetProfit(r.Sales, r.Commission, r.Bonus, r.Expenses)
}
