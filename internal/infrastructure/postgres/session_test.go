package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
	"github.com/Xausdorf/offline-pos/internal/infrastructure/postgres"
)

var productColumns = []string{"id", "sku", "name", "price", "stock", "active", "created_at", "updated_at"}

func newSession(t *testing.T) (pgxmock.PgxPoolIface, *postgres.Session, *int) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	released := 0
	return mock, postgres.NewSession(mock, func() { released++ }), &released
}

func productAccessor(t *testing.T, s *postgres.Session) repository.Accessor[entity.Product] {
	t.Helper()
	a, err := postgres.Factory{}.NewAccessor(entity.KindProduct, s)
	require.NoError(t, err)
	typed, ok := a.(repository.Accessor[entity.Product])
	require.True(t, ok)
	return typed
}

func TestSession_SaveChangesWithoutTransaction(t *testing.T) {
	mock, session, _ := newSession(t)
	products := productAccessor(t, session)

	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 10)
	require.NoError(t, err)
	require.NoError(t, products.Add(p))
	assert.Equal(t, 1, session.Pending())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID(), "SKU-1", "Coffee", int64(250), int64(10), true, p.CreatedAt(), p.UpdatedAt()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := session.SaveChanges(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Zero(t, session.Pending())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_SaveChangesNothingStaged(t *testing.T) {
	mock, session, _ := newSession(t)

	n, err := session.SaveChanges(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_StaleUpdateKeepsPendingChanges(t *testing.T) {
	mock, session, _ := newSession(t)
	products := productAccessor(t, session)

	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 10)
	require.NoError(t, err)
	require.NoError(t, products.Update(p))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE products SET sku = \$1, name = \$2, price = \$3, stock = \$4, active = \$5, created_at = \$6, updated_at = \$7 WHERE id = \$8`).
		WithArgs("SKU-1", "Coffee", int64(250), int64(10), true, pgxmock.AnyArg(), pgxmock.AnyArg(), p.ID()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err = session.SaveChanges(context.Background())

	require.ErrorIs(t, err, repository.ErrStale)
	assert.Equal(t, 1, session.Pending())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_FlushInsideExplicitTransaction(t *testing.T) {
	mock, session, _ := newSession(t)
	products := productAccessor(t, session)
	ctx := context.Background()

	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 10)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products WHERE id = \\$1").
		WithArgs(p.ID()).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	tx, err := session.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, products.Remove(p))
	n, err := session.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_UniqueViolationIsConflict(t *testing.T) {
	mock, session, _ := newSession(t)
	products := productAccessor(t, session)

	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 10)
	require.NoError(t, err)
	require.NoError(t, products.Add(p))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID(), "SKU-1", "Coffee", int64(250), int64(10), true, p.CreatedAt(), p.UpdatedAt()).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "products_sku_key"})
	mock.ExpectRollback()

	_, err = session.SaveChanges(context.Background())

	require.ErrorIs(t, err, repository.ErrConflict)
	assert.Contains(t, err.Error(), "products_sku_key")
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
	assert.Equal(t, 1, session.Pending())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RollbackDiscardsPendingChanges(t *testing.T) {
	mock, session, _ := newSession(t)
	products := productAccessor(t, session)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := session.BeginTx(ctx)
	require.NoError(t, err)
	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 10)
	require.NoError(t, err)
	require.NoError(t, products.Add(p))

	require.NoError(t, tx.Rollback(ctx))

	assert.Zero(t, session.Pending())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_BeginTwice(t *testing.T) {
	mock, session, _ := newSession(t)
	ctx := context.Background()

	mock.ExpectBegin()
	_, err := session.BeginTx(ctx)
	require.NoError(t, err)

	_, err = session.BeginTx(ctx)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_CloseReleasesOnce(t *testing.T) {
	mock, session, released := newSession(t)
	products := productAccessor(t, session)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := session.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
	require.NoError(t, tx.Close())

	assert.Equal(t, 1, *released)
	_, err = session.SaveChanges(ctx)
	assert.ErrorIs(t, err, postgres.ErrSessionClosed)
	_, err = products.List(ctx)
	assert.ErrorIs(t, err, postgres.ErrSessionClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessor_Get(t *testing.T) {
	t.Run("maps the row", func(t *testing.T) {
		mock, session, _ := newSession(t)
		products := productAccessor(t, session)
		id := uuid.New()
		now := time.Now().UTC()

		rows := mock.NewRows(productColumns).
			AddRow(id, "SKU-1", "Coffee", int64(250), int64(3), true, now, now)
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1 LIMIT 1`).
			WithArgs(id).
			WillReturnRows(rows)

		p, err := products.Get(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, p.ID())
		assert.Equal(t, "Coffee", p.Name())
		assert.Equal(t, int64(3), p.Stock())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		mock, session, _ := newSession(t)
		products := productAccessor(t, session)
		id := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1 LIMIT 1`).
			WithArgs(id).
			WillReturnRows(mock.NewRows(productColumns))

		_, err := products.Get(context.Background(), id)

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock, session, _ := newSession(t)
		products := productAccessor(t, session)
		boom := errors.New("connection reset")

		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs(pgxmock.AnyArg()).
			WillReturnError(boom)

		_, err := products.Get(context.Background(), uuid.New())

		require.ErrorIs(t, err, boom)
	})
}

func TestAccessor_GetForUpdateUsesOpenTransaction(t *testing.T) {
	mock, session, _ := newSession(t)
	products := productAccessor(t, session)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1 LIMIT 1 FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(mock.NewRows(productColumns).AddRow(id, "SKU-1", "Coffee", int64(250), int64(3), true, now, now))
	mock.ExpectRollback()

	tx, err := session.BeginTx(ctx)
	require.NoError(t, err)
	p, err := products.GetForUpdate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", p.SKU())
	require.NoError(t, tx.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessor_Find(t *testing.T) {
	mock, session, _ := newSession(t)
	a, err := postgres.Factory{}.NewAccessor(entity.KindDrawer, session)
	require.NoError(t, err)
	drawers := a.(repository.Accessor[entity.Drawer])
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM drawers WHERE cashier = \$1 AND status = \$2 ORDER BY opened_at, id`).
		WithArgs("alice", "open").
		WillReturnRows(mock.NewRows([]string{
			"id", "cashier", "opening_balance", "balance", "counted_balance", "status", "opened_at", "closed_at",
		}).AddRow(id, "alice", int64(1000), int64(1500), int64(0), "open", now, (*time.Time)(nil)))

	found, err := drawers.Find(context.Background(), repository.Filter{"status": "open", "cashier": "alice"})

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(1500), found[0].Balance())
	assert.True(t, found[0].IsOpen())
	assert.Nil(t, found[0].ClosedAt())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessor_FindRejectsUnknownColumn(t *testing.T) {
	mock, session, _ := newSession(t)
	products := productAccessor(t, session)

	_, err := products.Find(context.Background(), repository.Filter{"price; DROP TABLE products": 1})

	require.ErrorIs(t, err, postgres.ErrUnknownColumn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFactory_NewAccessor(t *testing.T) {
	_, session, _ := newSession(t)

	for _, kind := range []entity.Kind{
		entity.KindProduct, entity.KindDrawer, entity.KindCashMovement, entity.KindSale, entity.KindSaleLine,
	} {
		a, err := postgres.Factory{}.NewAccessor(kind, session)
		require.NoError(t, err, kind.String())
		assert.NotNil(t, a)
	}

	_, err := postgres.Factory{}.NewAccessor(entity.Kind(0), session)
	assert.ErrorIs(t, err, postgres.ErrUnsupportedKind)

	_, err = postgres.Factory{}.NewAccessor(entity.KindProduct, nil)
	assert.Error(t, err)
}
