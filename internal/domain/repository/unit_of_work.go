package repository

//go:generate mockgen -source=unit_of_work.go -destination=mocks/unit_of_work.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
)

var ErrAccessorType = errors.New("accessor has unexpected type")

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	SaveChanges(ctx context.Context) (int64, error)
	InTransaction() bool

	// Do runs fn inside Begin/SaveChanges/Commit and rolls back on any error.
	Do(ctx context.Context, fn func(ctx context.Context) error) error

	Accessor(kind entity.Kind) (any, error)
	Close() error
}

// Provider opens a unit of work bound to its own session.
type Provider interface {
	Open(ctx context.Context) (UnitOfWork, error)
}

type accessorSource interface {
	Accessor(kind entity.Kind) (any, error)
}

// Get returns the accessor for T from uow, creating it on first use.
func Get[T entity.Entity](uow accessorSource) (Accessor[T], error) {
	var zero T
	kind := zero.Kind()
	a, err := uow.Accessor(kind)
	if err != nil {
		return nil, err
	}
	typed, ok := a.(Accessor[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T", ErrAccessorType, kind, a)
	}
	return typed, nil
}
