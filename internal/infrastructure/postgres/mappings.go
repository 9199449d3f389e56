package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
)

type row[T any] interface {
	entity() *T
}

func scanRows[R row[T], T entity.Entity](ctx context.Context, q pgxscan.Querier, sql string, args ...any) ([]*T, error) {
	var rows []R
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, err
	}
	items := make([]*T, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.entity())
	}
	return items, nil
}

type productRow struct {
	ID        uuid.UUID `db:"id"`
	SKU       string    `db:"sku"`
	Name      string    `db:"name"`
	Price     int64     `db:"price"`
	Stock     int64     `db:"stock"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r productRow) entity() *entity.Product {
	return entity.ReconstructProduct(r.ID, r.SKU, r.Name, r.Price, r.Stock, r.Active, r.CreatedAt, r.UpdatedAt)
}

var products = mapping[entity.Product]{
	table:   "products",
	columns: []string{"id", "sku", "name", "price", "stock", "active", "created_at", "updated_at"},
	order:   "name, id",
	id:      (*entity.Product).ID,
	values: func(p *entity.Product) []any {
		return []any{p.ID(), p.SKU(), p.Name(), p.Price(), p.Stock(), p.Active(), p.CreatedAt(), p.UpdatedAt()}
	},
	scan: scanRows[productRow, entity.Product],
}

type drawerRow struct {
	ID             uuid.UUID  `db:"id"`
	Cashier        string     `db:"cashier"`
	OpeningBalance int64      `db:"opening_balance"`
	Balance        int64      `db:"balance"`
	CountedBalance int64      `db:"counted_balance"`
	Status         string     `db:"status"`
	OpenedAt       time.Time  `db:"opened_at"`
	ClosedAt       *time.Time `db:"closed_at"`
}

func (r drawerRow) entity() *entity.Drawer {
	return entity.ReconstructDrawer(
		r.ID, r.Cashier,
		r.OpeningBalance, r.Balance, r.CountedBalance,
		entity.DrawerStatus(r.Status),
		r.OpenedAt, r.ClosedAt,
	)
}

var drawers = mapping[entity.Drawer]{
	table: "drawers",
	columns: []string{
		"id", "cashier", "opening_balance", "balance", "counted_balance", "status", "opened_at", "closed_at",
	},
	order: "opened_at, id",
	id:    (*entity.Drawer).ID,
	values: func(d *entity.Drawer) []any {
		return []any{
			d.ID(), d.Cashier(), d.OpeningBalance(), d.Balance(), d.CountedBalance(),
			string(d.Status()), d.OpenedAt(), d.ClosedAt(),
		}
	},
	scan: scanRows[drawerRow, entity.Drawer],
}

type movementRow struct {
	ID        uuid.UUID `db:"id"`
	DrawerID  uuid.UUID `db:"drawer_id"`
	Type      string    `db:"type"`
	Amount    int64     `db:"amount"`
	Note      string    `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}

func (r movementRow) entity() *entity.CashMovement {
	return entity.ReconstructCashMovement(r.ID, r.DrawerID, entity.MovementType(r.Type), r.Amount, r.Note, r.CreatedAt)
}

var movements = mapping[entity.CashMovement]{
	table:   "cash_movements",
	columns: []string{"id", "drawer_id", "type", "amount", "note", "created_at"},
	order:   "created_at, id",
	id:      (*entity.CashMovement).ID,
	values: func(m *entity.CashMovement) []any {
		return []any{m.ID(), m.DrawerID(), string(m.Type()), m.Amount(), m.Note(), m.CreatedAt()}
	},
	scan: scanRows[movementRow, entity.CashMovement],
}

type saleRow struct {
	ID        uuid.UUID  `db:"id"`
	DrawerID  uuid.UUID  `db:"drawer_id"`
	Subtotal  int64      `db:"subtotal"`
	Discount  int64      `db:"discount"`
	Total     int64      `db:"total"`
	Method    string     `db:"payment_method"`
	Tendered  int64      `db:"tendered"`
	Change    int64      `db:"change_due"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	VoidedAt  *time.Time `db:"voided_at"`
}

func (r saleRow) entity() *entity.Sale {
	return entity.ReconstructSale(
		r.ID, r.DrawerID,
		r.Subtotal, r.Discount, r.Total,
		entity.PaymentMethod(r.Method),
		r.Tendered, r.Change,
		entity.SaleStatus(r.Status),
		r.CreatedAt, r.VoidedAt,
	)
}

var sales = mapping[entity.Sale]{
	table: "sales",
	columns: []string{
		"id", "drawer_id", "subtotal", "discount", "total", "payment_method",
		"tendered", "change_due", "status", "created_at", "voided_at",
	},
	order: "created_at, id",
	id:    (*entity.Sale).ID,
	values: func(s *entity.Sale) []any {
		return []any{
			s.ID(), s.DrawerID(), s.Subtotal(), s.Discount(), s.Total(), string(s.Method()),
			s.Tendered(), s.Change(), string(s.Status()), s.CreatedAt(), s.VoidedAt(),
		}
	},
	scan: scanRows[saleRow, entity.Sale],
}

type saleLineRow struct {
	ID        uuid.UUID `db:"id"`
	SaleID    uuid.UUID `db:"sale_id"`
	ProductID uuid.UUID `db:"product_id"`
	Name      string    `db:"name"`
	Quantity  int64     `db:"quantity"`
	UnitPrice int64     `db:"unit_price"`
	Total     int64     `db:"total"`
}

func (r saleLineRow) entity() *entity.SaleLine {
	return entity.ReconstructSaleLine(r.ID, r.SaleID, r.ProductID, r.Name, r.Quantity, r.UnitPrice, r.Total)
}

var saleLines = mapping[entity.SaleLine]{
	table:   "sale_lines",
	columns: []string{"id", "sale_id", "product_id", "name", "quantity", "unit_price", "total"},
	order:   "name, id",
	id:      (*entity.SaleLine).ID,
	values: func(l *entity.SaleLine) []any {
		return []any{l.ID(), l.SaleID(), l.ProductID(), l.Name(), l.Quantity(), l.UnitPrice(), l.Total()}
	},
	scan: scanRows[saleLineRow, entity.SaleLine],
}
