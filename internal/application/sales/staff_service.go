package sales

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StaffService handles staff registration and maintenance
type StaffService struct {
	staffRepo sales.StaffRepository
	logger    *zap.Logger
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo sales.StaffRepository, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Register creates a staff member
func (s *StaffService) Register(ctx context.Context, req RegisterStaffRequest) (*StaffResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	hiredOn, err := parseHireDate(req.HiredOn)
	if err != nil {
		return nil, err
	}

	staff, err := sales.NewStaffMember(req.Name, req.Phone, hiredOn)
	if err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info("staff registered",
		zap.String("staff_id", staff.ID.String()),
		zap.String("name", staff.Name))

	resp := ToStaffResponse(staff)
	return &resp, nil
}

// Update replaces name, phone and hire date of an existing member.
// Records keep the name they were created with.
func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	hiredOn, err := parseHireDate(req.HiredOn)
	if err != nil {
		return nil, err
	}

	staff, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := staff.Update(req.Name, req.Phone, hiredOn); err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info("staff updated", zap.String("staff_id", id.String()))

	resp := ToStaffResponse(staff)
	return &resp, nil
}

// Delete removes a staff member. Existing records are kept.
func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return sales.ErrStaffNotFound
		}
		return err
	}
	s.logger.Info("staff deleted", zap.String("staff_id", id.String()))
	return nil
}

// Get returns one staff member
func (s *StaffService) Get(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	staff, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStaffResponse(staff)
	return &resp, nil
}

// List returns every staff member in registration order
func (s *StaffService) List(ctx context.Context) ([]StaffResponse, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StaffResponse, 0, len(staff))
	for i := range staff {
		out = append(out, ToStaffResponse(&staff[i]))
	}
	return out, nil
}

func (s *StaffService) find(ctx context.Context, id uuid.UUID) (*sales.StaffMember, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, sales.ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

func parseHireDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrValidation.Code, "Hire date must be YYYY-MM-DD")
	}
	return &t, nil
}
