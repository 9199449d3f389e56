// Package coordinator serializes the transaction lifecycle of one database
// session and hands out cached typed accessors over it.
//
// A Coordinator owns its session. Begin, Commit, Rollback and SaveChanges are
// mutually exclusive on one instance; reads and staged writes made through
// accessors between Begin and Commit are not covered by that lock.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

var (
	ErrTransactionActive = errors.New("transaction already active")
	ErrNoTransaction     = errors.New("no active transaction")
	ErrClosed            = errors.New("coordinator is closed")
)

const (
	opBegin    = "begin"
	opCommit   = "commit"
	opRollback = "rollback"
	opSave     = "save"
)

type Option func(*Coordinator)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

type Coordinator struct {
	session repository.Session
	factory repository.AccessorFactory
	logger  *slog.Logger
	metrics *Metrics

	// lock guards tx and every call into the session lifecycle.
	lock   *semaphore.Weighted
	tx     repository.Tx
	active atomic.Bool

	accessorsMu sync.Mutex
	accessors   map[entity.Kind]any

	closeOnce sync.Once
	closed    atomic.Bool
}

var _ repository.UnitOfWork = (*Coordinator)(nil)

func New(session repository.Session, factory repository.AccessorFactory, opts ...Option) *Coordinator {
	c := &Coordinator{
		session:   session,
		factory:   factory,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		lock:      semaphore.NewWeighted(1),
		accessors: make(map[entity.Kind]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Accessor returns the cached accessor for kind, building it on first request.
// Prefer repository.Get for a typed result.
func (c *Coordinator) Accessor(kind entity.Kind) (any, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.accessorsMu.Lock()
	defer c.accessorsMu.Unlock()

	if a, ok := c.accessors[kind]; ok {
		return a, nil
	}
	a, err := c.factory.NewAccessor(kind, c.session)
	if err != nil {
		return nil, fmt.Errorf("accessor for %s: %w", kind, err)
	}
	c.accessors[kind] = a
	return a, nil
}

func (c *Coordinator) InTransaction() bool {
	return c.active.Load()
}

func (c *Coordinator) Begin(ctx context.Context) (err error) {
	defer c.observe(opBegin, time.Now(), &err)

	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.lock.Release(1)

	if c.tx != nil {
		return ErrTransactionActive
	}
	tx, err := c.session.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	c.tx = tx
	c.active.Store(true)
	c.logger.Debug("transaction started")
	return nil
}

func (c *Coordinator) Commit(ctx context.Context) (err error) {
	defer c.observe(opCommit, time.Now(), &err)

	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.lock.Release(1)

	if c.tx == nil {
		return ErrNoTransaction
	}
	return c.finish(ctx, opCommit, c.tx.Commit)
}

func (c *Coordinator) Rollback(ctx context.Context) (err error) {
	defer c.observe(opRollback, time.Now(), &err)

	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.lock.Release(1)

	if c.tx == nil {
		return ErrNoTransaction
	}
	return c.finish(ctx, opRollback, c.tx.Rollback)
}

func (c *Coordinator) SaveChanges(ctx context.Context) (n int64, err error) {
	defer c.observe(opSave, time.Now(), &err)

	if err := c.acquire(ctx); err != nil {
		return 0, err
	}
	defer c.lock.Release(1)

	n, err = c.session.SaveChanges(ctx)
	if err != nil {
		return n, fmt.Errorf("save changes: %w", err)
	}
	c.logger.Debug("changes saved", "rows", n)
	return n, nil
}

func (c *Coordinator) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.Begin(ctx); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		return c.abort(ctx, err)
	}
	if _, err := c.SaveChanges(ctx); err != nil {
		return c.abort(ctx, err)
	}
	return c.Commit(ctx)
}

// Close releases the active transaction and the session. Only the first call
// has an effect; it waits for an in-flight lifecycle operation to finish.
func (c *Coordinator) Close() error {
	var err error
	c.closeOnce.Do(func() {
		_ = c.lock.Acquire(context.Background(), 1)
		defer c.lock.Release(1)

		c.closed.Store(true)
		if c.tx != nil {
			if txErr := c.tx.Close(); txErr != nil {
				c.logger.Warn("closing open transaction failed", "error", txErr)
			}
			c.tx = nil
			c.active.Store(false)
		}
		err = c.session.Close()
	})
	return err
}

func (c *Coordinator) acquire(ctx context.Context) error {
	if err := c.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	if c.closed.Load() {
		c.lock.Release(1)
		return ErrClosed
	}
	return nil
}

// finish ends the active transaction with end. The handle is closed and
// cleared whatever end returns, so a failed commit leaves room for a new Begin.
func (c *Coordinator) finish(ctx context.Context, op string, end func(context.Context) error) error {
	tx := c.tx
	defer func() {
		if err := tx.Close(); err != nil {
			c.logger.Warn("closing transaction failed", "op", op, "error", err)
		}
		c.tx = nil
		c.active.Store(false)
	}()

	if err := end(ctx); err != nil {
		return fmt.Errorf("%s transaction: %w", op, err)
	}
	c.logger.Debug("transaction finished", "op", op)
	return nil
}

func (c *Coordinator) abort(ctx context.Context, cause error) error {
	if err := c.Rollback(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (c *Coordinator) observe(op string, start time.Time, err *error) {
	if c.metrics == nil {
		return
	}
	c.metrics.observe(op, time.Since(start), *err)
}
