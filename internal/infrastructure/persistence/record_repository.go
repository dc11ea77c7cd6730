package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/salesdash/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRecordRepository implements sales.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// List returns every record chronologically
func (r *GormRecordRepository) List(ctx context.Context) ([]sales.SalesRecord, error) {
	return r.FindBy(ctx, sales.RecordFilter{})
}

// FindBy returns records matching filter ordered by year, month and creation
func (r *GormRecordRepository) FindBy(ctx context.Context, filter sales.RecordFilter) ([]sales.SalesRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.SalesRecordModel{})
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}

	var rows []models.SalesRecordModel
	if err := query.Order("year, month, created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]sales.SalesRecord, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindByID finds a record by ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesRecord, error) {
	var row models.SalesRecordModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// ExistsForPeriod reports whether staffID already has a record for period
func (r *GormRecordRepository) ExistsForPeriod(ctx context.Context, staffID uuid.UUID, period sales.Period) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesRecordModel{}).
		Where("staff_id = ? AND month = ? AND year = ?", staffID, period.Month, period.Year).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a record. A second record for the same staff
// member and period violates the unique index and maps to ErrDuplicatePeriod.
func (r *GormRecordRepository) Save(ctx context.Context, record *sales.SalesRecord) error {
	err := r.db.WithContext(ctx).Save(models.SalesRecordModelFromDomain(record)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sales.ErrDuplicatePeriod
	}
	return err
}

// Delete deletes a record
func (r *GormRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SalesRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ sales.RecordRepository = (*GormRecordRepository)(nil)
