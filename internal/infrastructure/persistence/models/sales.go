package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// StaffMemberModel is the persistence model for sales.StaffMember
type StaffMemberModel struct {
	BaseModel
	Name    string     `gorm:"type:varchar(200);not null;index"`
	Phone   string     `gorm:"type:varchar(50);not null;default:''"`
	HiredOn *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (StaffMemberModel) TableName() string {
	return "staff_members"
}

// ToDomain converts the persistence model to a domain StaffMember
func (m *StaffMemberModel) ToDomain() *sales.StaffMember {
	return &sales.StaffMember{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Phone:      m.Phone,
		HiredOn:    m.HiredOn,
	}
}

// StaffMemberModelFromDomain builds the persistence model for s
func StaffMemberModelFromDomain(s *sales.StaffMember) *StaffMemberModel {
	m := &StaffMemberModel{
		Name:    s.Name,
		Phone:   s.Phone,
		HiredOn: s.HiredOn,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// SalesRecordModel is the persistence model for sales.SalesRecord.
// (staff_id, month, year) is unique.
type SalesRecordModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StaffID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_sales_records_staff_period,priority:1"`
	StaffName  string          `gorm:"type:varchar(200);not null"`
	Month      string          `gorm:"type:char(2);not null;uniqueIndex:idx_sales_records_staff_period,priority:2"`
	Year       string          `gorm:"type:char(4);not null;uniqueIndex:idx_sales_records_staff_period,priority:3;index"`
	Sales      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Commission decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Bonus      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Expenses   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NetProfit  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesRecordModel) TableName() string {
	return "sales_records"
}

// ToDomain converts the persistence model to a domain SalesRecord
func (m *SalesRecordModel) ToDomain() *sales.SalesRecord {
	return &sales.SalesRecord{
		ID:         m.ID,
		StaffID:    m.StaffID,
		StaffName:  m.StaffName,
		Month:      m.Month,
		Year:       m.Year,
		Sales:      m.Sales,
		Commission: m.Commission,
		Bonus:      m.Bonus,
		Expenses:   m.Expenses,
		NetProfit:  m.NetProfit,
		CreatedAt:  m.CreatedAt,
	}
}

// SalesRecordModelFromDomain builds the persistence model for r
func SalesRecordModelFromDomain(r *sales.SalesRecord) *SalesRecordModel {
	return &SalesRecordModel{
		ID:         r.ID,
		StaffID:    r.StaffID,
		StaffName:  r.StaffName,
		Month:      r.Month,
		Year:       r.Year,
		Sales:      r.Sales,
		Commission: r.Commission,
		Bonus:      r.Bonus,
		Expenses:   r.Expenses,
		NetProfit:  r.NetProfit,
		CreatedAt:  r.CreatedAt,
	}
}
