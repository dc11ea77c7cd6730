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

// GormStaffRepository implements sales.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// List returns every staff member in registration order
func (r *GormStaffRepository) List(ctx context.Context) ([]sales.StaffMember, error) {
	var rows []models.StaffMemberModel
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]sales.StaffMember, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.StaffMember, error) {
	var row models.StaffMemberModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindByName returns the earliest registered staff member with the exact name
func (r *GormStaffRepository) FindByName(ctx context.Context, name string) (*sales.StaffMember, error) {
	var row models.StaffMemberModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at, id").
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *sales.StaffMember) error {
	return r.db.WithContext(ctx).Save(models.StaffMemberModelFromDomain(staff)).Error
}

// Delete deletes a staff member. Their records keep the denormalized name.
func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffMemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ sales.StaffRepository = (*GormStaffRepository)(nil)
