package postgres

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

var ErrUnknownColumn = errors.New("unknown filter column")

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// mapping binds an entity type to its table. columns[0] is the primary key and
// values returns one value per column in the same order.
type mapping[T entity.Entity] struct {
	table   string
	columns []string
	order   string
	id      func(*T) uuid.UUID
	values  func(*T) []any
	scan    func(ctx context.Context, q pgxscan.Querier, sql string, args ...any) ([]*T, error)
}

type Accessor[T entity.Entity] struct {
	session *Session
	m       mapping[T]
}

var _ repository.Accessor[entity.Product] = (*Accessor[entity.Product])(nil)

func newAccessor[T entity.Entity](session *Session, m mapping[T]) *Accessor[T] {
	return &Accessor[T]{session: session, m: m}
}

func (a *Accessor[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return a.one(ctx, a.selectAll().Where(a.byID(id)))
}

func (a *Accessor[T]) GetForUpdate(ctx context.Context, id uuid.UUID) (*T, error) {
	return a.one(ctx, a.selectAll().Where(a.byID(id)).Suffix("FOR UPDATE"))
}

func (a *Accessor[T]) List(ctx context.Context) ([]*T, error) {
	return a.many(ctx, a.selectAll().OrderBy(a.m.order))
}

func (a *Accessor[T]) Find(ctx context.Context, filter repository.Filter) ([]*T, error) {
	b := a.selectAll()
	for _, col := range slices.Sorted(maps.Keys(filter)) {
		if !slices.Contains(a.m.columns, col) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, a.m.table, col)
		}
		b = b.Where(col+" = ?", filter[col])
	}
	return a.many(ctx, b.OrderBy(a.m.order))
}

func (a *Accessor[T]) Add(item *T) error {
	return a.session.stage(
		psql.Insert(a.m.table).Columns(a.m.columns...).Values(a.m.values(item)...),
		false,
	)
}

func (a *Accessor[T]) Update(item *T) error {
	values := a.m.values(item)
	b := psql.Update(a.m.table)
	for i, col := range a.m.columns[1:] {
		b = b.Set(col, values[i+1])
	}
	return a.session.stage(b.Where(a.byID(a.m.id(item))), true)
}

func (a *Accessor[T]) Remove(item *T) error {
	return a.session.stage(
		psql.Delete(a.m.table).Where(a.byID(a.m.id(item))),
		true,
	)
}

// byID compares with a plain placeholder: squirrel.Eq would expand a
// uuid.UUID array into an IN list.
func (a *Accessor[T]) byID(id uuid.UUID) squirrel.Sqlizer {
	return squirrel.Expr(a.m.columns[0]+" = ?", id)
}

func (a *Accessor[T]) selectAll() squirrel.SelectBuilder {
	return psql.Select(a.m.columns...).From(a.m.table)
}

func (a *Accessor[T]) one(ctx context.Context, b squirrel.SelectBuilder) (*T, error) {
	items, err := a.many(ctx, b.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return items[0], nil
}

func (a *Accessor[T]) many(ctx context.Context, b squirrel.SelectBuilder) ([]*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", a.m.table, err)
	}
	var items []*T
	err = a.session.read(ctx, func(q querier) error {
		items, err = a.m.scan(ctx, q, query, args...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", a.m.table, err)
	}
	return items, nil
}
