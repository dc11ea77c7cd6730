package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/shared"
)

// StaffMember is a salesperson whose monthly figures are tracked.
// Name is display only and may repeat across members.
type StaffMember struct {
	shared.BaseEntity
	Name    string
	Phone   string
	HiredOn *time.Time
}

// NewStaffMember creates a staff member with a generated ID
func NewStaffMember(name, phone string, hiredOn *time.Time) (*StaffMember, error) {
	return NewStaffMemberWithID(uuid.New(), name, phone, hiredOn)
}

// NewStaffMemberWithID creates a staff member around an existing ID (imports)
func NewStaffMemberWithID(id uuid.UUID, name, phone string, hiredOn *time.Time) (*StaffMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return &StaffMember{
		BaseEntity: shared.NewBaseEntityWithID(id),
		Name:       name,
		Phone:      strings.TrimSpace(phone),
		HiredOn:    hiredOn,
	}, nil
}

// Update replaces the editable fields
func (s *StaffMember) Update(name, phone string, hiredOn *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	s.Name = name
	s.Phone = strings.TrimSpace(phone)
	s.HiredOn = hiredOn
	s.Touch()
	return nil
}
