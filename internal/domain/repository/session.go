package repository

import (
	"context"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
)

// Session is a connection-scoped handle to the database with change tracking.
// It is not safe for concurrent lifecycle calls; a unit of work serializes them.
type Session interface {
	BeginTx(ctx context.Context) (Tx, error)
	// SaveChanges writes staged changes and returns the number of affected rows.
	SaveChanges(ctx context.Context) (int64, error)
	Close() error
}

// Tx is an open session transaction. Close releases the handle and rolls back
// if neither Commit nor Rollback ran.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Close() error
}

// AccessorFactory builds the accessor for kind over session. The returned value
// must implement Accessor[T] for the entity type T whose Kind is kind.
// Building an accessor must not touch the database.
type AccessorFactory interface {
	NewAccessor(kind entity.Kind, session Session) (any, error)
}
