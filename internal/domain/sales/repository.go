package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/shared"
)

// RecordFilter narrows a record listing. Zero values mean "any".
type RecordFilter struct {
	Year    string
	StaffID *uuid.UUID
}

// Matches reports whether r passes the filter
func (f RecordFilter) Matches(r SalesRecord) bool {
	if f.Year != "" && r.Year != f.Year {
		return false
	}
	if f.StaffID != nil && r.StaffID != *f.StaffID {
		return false
	}
	return true
}

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	shared.Repository[StaffMember]

	// FindByName returns the first staff member (by creation) with the exact name
	FindByName(ctx context.Context, name string) (*StaffMember, error)
}

// RecordRepository defines the interface for sales record persistence
type RecordRepository interface {
	shared.Repository[SalesRecord]

	// FindBy returns records matching filter ordered by year, month, creation
	FindBy(ctx context.Context, filter RecordFilter) ([]SalesRecord, error)

	// ExistsForPeriod reports whether staffID already has a record for period
	ExistsForPeriod(ctx context.Context, staffID uuid.UUID, period Period) (bool, error)
}
