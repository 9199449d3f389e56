package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

var (
	ErrSessionClosed = errors.New("session is closed")
	errTxOpen        = errors.New("session transaction already open")
)

// DB is the connection a Session runs on. *pgxpool.Conn, *pgx.Conn and
// pgxmock connections satisfy it.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	pgxscan.Querier
}

type change struct {
	sql       string
	args      []any
	mustMatch bool
}

// Session tracks staged changes over one connection. Reads go through the open
// transaction when there is one. All wire access is serialized.
type Session struct {
	db      DB
	release func()

	mu      sync.Mutex
	tx      pgx.Tx
	pending []change
	closed  bool
}

var _ repository.Session = (*Session)(nil)

// NewSession wraps db. release, if set, runs once on Close and should return
// the connection to its pool.
func NewSession(db DB, release func()) *Session {
	return &Session{db: db, release: release}
}

func (s *Session) BeginTx(ctx context.Context) (repository.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx != nil {
		return nil, errTxOpen
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	s.tx = tx
	return &sessionTx{session: s, tx: tx}, nil
}

// SaveChanges sends staged statements in the order they were staged. Without
// an open transaction the flush runs in its own. Staged changes are dropped
// only after a successful flush.
func (s *Session) SaveChanges(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}
	if len(s.pending) == 0 {
		return 0, nil
	}

	if s.tx != nil {
		n, err := flush(ctx, s.tx, s.pending)
		if err != nil {
			return 0, err
		}
		s.pending = nil
		return n, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin implicit transaction: %w", err)
	}
	n, err := flush(ctx, tx, s.pending)
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit implicit transaction: %w", err)
	}
	s.pending = nil
	return n, nil
}

// Pending reports the number of staged statements.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.pending = nil

	var err error
	if s.tx != nil {
		err = s.tx.Rollback(context.Background())
		if errors.Is(err, pgx.ErrTxClosed) {
			err = nil
		}
		s.tx = nil
	}
	if s.release != nil {
		s.release()
	}
	return err
}

func (s *Session) stage(b squirrel.Sqlizer, mustMatch bool) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.pending = append(s.pending, change{sql: query, args: args, mustMatch: mustMatch})
	return nil
}

func (s *Session) read(ctx context.Context, fn func(q querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	return fn(s.db)
}

func flush(ctx context.Context, q querier, changes []change) (int64, error) {
	var total int64
	for _, c := range changes {
		tag, err := q.Exec(ctx, c.sql, c.args...)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return 0, fmt.Errorf("%w: %s: %w", repository.ErrConflict, pgErr.ConstraintName, err)
			}
			return 0, err
		}
		if c.mustMatch && tag.RowsAffected() == 0 {
			return 0, repository.ErrStale
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

type sessionTx struct {
	session *Session
	tx      pgx.Tx
	done    bool
}

func (t *sessionTx) Commit(ctx context.Context) error {
	return t.end(func() error { return t.tx.Commit(ctx) }, false)
}

// Rollback also drops changes staged but not yet saved.
func (t *sessionTx) Rollback(ctx context.Context) error {
	return t.end(func() error { return t.tx.Rollback(ctx) }, true)
}

func (t *sessionTx) Close() error {
	return t.end(func() error {
		err := t.tx.Rollback(context.Background())
		if errors.Is(err, pgx.ErrTxClosed) {
			return nil
		}
		return err
	}, true)
}

func (t *sessionTx) end(fn func() error, discard bool) error {
	s := t.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.done {
		return nil
	}
	t.done = true
	if s.tx != t.tx {
		return nil
	}
	s.tx = nil
	if discard {
		s.pending = nil
	}
	return fn()
}
