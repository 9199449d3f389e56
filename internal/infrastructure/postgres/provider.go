package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/Xausdorf/offline-pos/internal/coordinator"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

const (
	defaultAcquireRetries = 3
	defaultAcquireBackoff = 50 * time.Millisecond
)

// Provider opens one coordinator per unit of work, each pinned to its own
// pool connection until Close.
type Provider struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics *coordinator.Metrics
	retries uint64
	backoff time.Duration
}

var _ repository.Provider = (*Provider)(nil)

func NewProvider(pool *pgxpool.Pool, logger *slog.Logger, metrics *coordinator.Metrics) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		pool:    pool,
		logger:  logger,
		metrics: metrics,
		retries: defaultAcquireRetries,
		backoff: defaultAcquireBackoff,
	}
}

func (p *Provider) Open(ctx context.Context) (repository.UnitOfWork, error) {
	var conn *pgxpool.Conn
	backoff := retry.WithMaxRetries(p.retries, retry.NewExponential(p.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := p.pool.Acquire(ctx)
		if err != nil {
			if isTransient(err) {
				p.logger.Warn("acquire connection failed, retrying", "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	session := NewSession(conn, conn.Release)
	return coordinator.New(session, Factory{},
		coordinator.WithLogger(p.logger),
		coordinator.WithMetrics(p.metrics),
	), nil
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
