package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch bumps UpdatedAt to now
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	return NewBaseEntityWithID(uuid.New())
}

// NewBaseEntityWithID creates a base entity around a caller-chosen ID
func NewBaseEntityWithID(id uuid.UUID) BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
