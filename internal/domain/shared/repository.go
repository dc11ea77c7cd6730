package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories.
// Save is an upsert keyed by the entity ID.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}
