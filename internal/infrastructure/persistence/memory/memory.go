// Package memory provides map-backed repositories for fixtures, tests and
// throwaway sessions. Nothing is persisted.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
)

// StaffRepository is an in-memory sales.StaffRepository
type StaffRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]sales.StaffMember
}

// NewStaffRepository returns an empty store
func NewStaffRepository() *StaffRepository {
	return &StaffRepository{byID: make(map[uuid.UUID]sales.StaffMember)}
}

// List returns staff in insertion order
func (r *StaffRepository) List(ctx context.Context) ([]sales.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sales.StaffMember, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// FindByID returns a copy of the stored member
func (r *StaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &s, nil
}

// FindByName returns the first inserted member with the exact name
func (r *StaffRepository) FindByName(ctx context.Context, name string) (*sales.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if s := r.byID[id]; s.Name == name {
			return &s, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Save inserts or replaces a member
func (r *StaffRepository) Save(ctx context.Context, staff *sales.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[staff.ID]; !ok {
		r.order = append(r.order, staff.ID)
	}
	r.byID[staff.ID] = *staff
	return nil
}

// Delete removes a member
func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}

// RecordRepository is an in-memory sales.RecordRepository.
// Like the database it refuses a second record for the same staff and period.
type RecordRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]sales.SalesRecord
}

// NewRecordRepository returns an empty store
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{byID: make(map[uuid.UUID]sales.SalesRecord)}
}

// List returns every record chronologically
func (r *RecordRepository) List(ctx context.Context) ([]sales.SalesRecord, error) {
	return r.FindBy(ctx, sales.RecordFilter{})
}

// FindBy returns matching records ordered by period, then insertion
func (r *RecordRepository) FindBy(ctx context.Context, filter sales.RecordFilter) ([]sales.SalesRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []sales.SalesRecord
	for _, id := range r.order {
		if rec := r.byID[id]; filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period().Before(out[j].Period()) })
	return out, nil
}

// FindByID returns a copy of the stored record
func (r *RecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

// ExistsForPeriod reports whether staffID already has a record for period
func (r *RecordRepository) ExistsForPeriod(ctx context.Context, staffID uuid.UUID, period sales.Period) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.conflict(staffID, period, uuid.Nil), nil
}

// Save inserts or replaces a record
func (r *RecordRepository) Save(ctx context.Context, record *sales.SalesRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflict(record.StaffID, record.Period(), record.ID) {
		return sales.ErrDuplicatePeriod
	}
	if _, ok := r.byID[record.ID]; !ok {
		r.order = append(r.order, record.ID)
	}
	r.byID[record.ID] = *record
	return nil
}

// Delete removes a record
func (r *RecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}

// conflict must be called with mu held
func (r *RecordRepository) conflict(staffID uuid.UUID, period sales.Period, except uuid.UUID) bool {
	for id, rec := range r.byID {
		if id != except && rec.StaffID == staffID && rec.Period() == period {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

var (
	_ sales.StaffRepository  = (*StaffRepository)(nil)
	_ sales.RecordRepository = (*RecordRepository)(nil)
)
