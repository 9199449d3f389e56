package repository

//go:generate mockgen -source=repository.go -destination=mocks/repository.go -package=mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrStale is returned by a flush when an update or delete matched no row.
	ErrStale = errors.New("row was changed or removed by another session")
	// ErrConflict is returned by a flush when a write violates a unique constraint.
	ErrConflict = errors.New("conflicts with an existing row")
)

// Filter matches rows by column equality.
type Filter map[string]any

// Accessor is a typed view over the session for one entity type. Add, Update and
// Remove only stage changes; they are written by the next SaveChanges.
type Accessor[T entity.Entity] interface {
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Find(ctx context.Context, filter Filter) ([]*T, error)

	Add(item *T) error
	Update(item *T) error
	Remove(item *T) error
}
