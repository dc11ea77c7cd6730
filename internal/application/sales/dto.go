package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// DateLayout is the accepted format for hire dates
const DateLayout = "2006-01-02"

// RegisterStaffRequest represents a request to register a staff member
type RegisterStaffRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	HiredOn string `json:"hired_on" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateStaffRequest replaces the editable fields of a staff member
type UpdateStaffRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	HiredOn string `json:"hired_on" validate:"omitempty,datetime=2006-01-02"`
}

// StaffResponse represents a staff member in command output
type StaffResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	HiredOn   *time.Time `json:"hired_on,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddRecordRequest represents one month of figures as typed by the user.
// Amounts are free text and parsed leniently; Year defaults to the current year.
type AddRecordRequest struct {
	StaffID    string `json:"staff_id" validate:"required,uuid"`
	Month      string `json:"month" validate:"required"`
	Year       string `json:"year" validate:"omitempty,numeric,len=4"`
	Sales      string `json:"sales" validate:"required"`
	Commission string `json:"commission"`
	Bonus      string `json:"bonus"`
	Expenses   string `json:"expenses"`
}

// RecordListFilter narrows a record listing. Empty fields match everything.
type RecordListFilter struct {
	Year    string `json:"year" validate:"omitempty,numeric,len=4"`
	StaffID string `json:"staff_id" validate:"omitempty,uuid"`
}

// RecordResponse represents a sales record in command output
type RecordResponse struct {
	ID         uuid.UUID       `json:"id"`
	StaffID    uuid.UUID       `json:"staff_id"`
	StaffName  string          `json:"staff_name"`
	Month      string          `json:"month"`
	Year       string          `json:"year"`
	Period     string          `json:"period"`
	Sales      decimal.Decimal `json:"sales"`
	Commission decimal.Decimal `json:"commission"`
	Bonus      decimal.Decimal `json:"bonus"`
	Expenses   decimal.Decimal `json:"expenses"`
	NetProfit  decimal.Decimal `json:"net_profit"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToStaffResponse converts a domain staff member
func ToStaffResponse(s *sales.StaffMember) StaffResponse {
	return StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		HiredOn:   s.HiredOn,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToRecordResponse converts a domain sales record
func ToRecordResponse(r *sales.SalesRecord) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		StaffID:    r.StaffID,
		StaffName:  r.StaffName,
		Month:      r.Month,
		Year:       r.Year,
		Period:     r.Period().String(),
		Sales:      r.Sales,
		Commission: r.Commission,
		Bonus:      r.Bonus,
		Expenses:   r.Expenses,
		NetProfit:  r.NetProfit,
		CreatedAt:  r.CreatedAt,
	}
}
