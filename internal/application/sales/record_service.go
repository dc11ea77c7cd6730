package sales

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RecordService handles monthly sales record entry
type RecordService struct {
	staffRepo  sales.StaffRepository
	recordRepo sales.RecordRepository
	logger     *zap.Logger
	now        func() time.Time
}

// RecordServiceOption configures a RecordService
type RecordServiceOption func(*RecordService)

// WithClock overrides the clock used for the default year
func WithClock(now func() time.Time) RecordServiceOption {
	return func(s *RecordService) {
		s.now = now
	}
}

// NewRecordService creates a new RecordService
func NewRecordService(
	staffRepo sales.StaffRepository,
	recordRepo sales.RecordRepository,
	logger *zap.Logger,
	opts ...RecordServiceOption,
) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RecordService{
		staffRepo:  staffRepo,
		recordRepo: recordRepo,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores one month of figures for a staff member. Nothing is written
// when validation fails or the period is already taken.
func (s *RecordService) Add(ctx context.Context, req AddRecordRequest) (*RecordResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, sales.ErrStaffRequired
	}
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, sales.ErrStaffNotFound
		}
		return nil, err
	}

	record, err := s.store(ctx, staff, req)
	if err != nil {
		return nil, err
	}
	resp := ToRecordResponse(record)
	return &resp, nil
}

// store validates the period and amounts for a resolved staff member and
// saves the record.
func (s *RecordService) store(ctx context.Context, staff *sales.StaffMember, req AddRecordRequest) (*sales.SalesRecord, error) {
	if strings.TrimSpace(req.Sales) == "" {
		return nil, sales.ErrSalesRequired
	}
	period, err := sales.NewPeriod(req.Month, s.yearOrCurrent(req.Year))
	if err != nil {
		return nil, err
	}

	exists, err := s.recordRepo.ExistsForPeriod(ctx, staff.ID, period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, sales.ErrDuplicatePeriod
	}

	record, err := sales.NewSalesRecord(staff, period, sales.Amounts{
		Sales:      sales.ParseAmount(req.Sales),
		Commission: sales.ParseAmount(req.Commission),
		Bonus:      sales.ParseAmount(req.Bonus),
		Expenses:   sales.ParseAmount(req.Expenses),
	})
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("sales record added",
		zap.String("record_id", record.ID.String()),
		zap.String("staff_id", staff.ID.String()),
		zap.String("period", period.Key()),
		zap.String("net_profit", record.NetProfit.StringFixed(2)))
	return record, nil
}

// yearOrCurrent returns year, or the current year when it is blank
func (s *RecordService) yearOrCurrent(year string) string {
	if year = strings.TrimSpace(year); year != "" {
		return year
	}
	return strconv.Itoa(s.now().Year())
}

// Delete removes a record
func (s *RecordService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return sales.ErrRecordNotFound
		}
		return err
	}
	s.logger.Info("sales record deleted", zap.String("record_id", id.String()))
	return nil
}

// List returns records matching filter in chronological order
func (s *RecordService) List(ctx context.Context, filter RecordListFilter) ([]RecordResponse, error) {
	if err := validateRequest(filter); err != nil {
		return nil, err
	}
	domainFilter := sales.RecordFilter{Year: filter.Year}
	if filter.StaffID != "" {
		id, err := uuid.Parse(filter.StaffID)
		if err != nil {
			return nil, shared.ErrInvalidInput
		}
		domainFilter.StaffID = &id
	}

	records, err := s.recordRepo.FindBy(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	out := make([]RecordResponse, 0, len(records))
	for i := range records {
		out = append(out, ToRecordResponse(&records[i]))
	}
	return out, nil
}

// Years returns the distinct years that have records, ascending
func (s *RecordService) Years(ctx context.Context) ([]string, error) {
	records, err := s.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	years := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Strings(years)
	return years, nil
}
