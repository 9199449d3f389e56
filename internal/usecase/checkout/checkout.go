package checkout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

type Line struct {
	ProductID uuid.UUID
	Quantity  int64
}

type Request struct {
	// SaleID is optional. A request repeating the id of a stored sale
	// returns that sale without charging again.
	SaleID   uuid.UUID
	DrawerID uuid.UUID
	Lines    []Line
	Discount entity.Discount
	Method   entity.PaymentMethod
	Tendered int64
}

type Result struct {
	Sale     *entity.Sale
	Lines    []*entity.SaleLine
	Replayed bool
}

type UseCase struct {
	provider repository.Provider
}

func NewUseCase(provider repository.Provider) *UseCase {
	return &UseCase{provider: provider}
}

type repos struct {
	products  repository.Accessor[entity.Product]
	drawers   repository.Accessor[entity.Drawer]
	movements repository.Accessor[entity.CashMovement]
	sales     repository.Accessor[entity.Sale]
	lines     repository.Accessor[entity.SaleLine]
}

func (uc *UseCase) Execute(ctx context.Context, req Request) (*Result, error) {
	lines, err := mergeLines(req.Lines)
	if err != nil {
		return nil, err
	}

	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	r, err := accessors(uow)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if uow.InTransaction() {
			_ = uow.Rollback(ctx)
		}
	}()

	drawer, err := r.drawers.GetForUpdate(ctx, req.DrawerID)
	if err != nil {
		return nil, fmt.Errorf("drawer %s: %w", req.DrawerID, err)
	}

	if req.SaleID != uuid.Nil {
		prior, err := loadSale(ctx, r, req.SaleID)
		if err == nil {
			prior.Replayed = true
			return prior, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if !drawer.IsOpen() {
		return nil, entity.ErrDrawerClosed
	}

	sale := entity.NewSale(req.SaleID, drawer.ID())
	for _, l := range lines {
		product, err := r.products.GetForUpdate(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", l.ProductID, err)
		}
		if err := product.Take(l.Quantity); err != nil {
			return nil, fmt.Errorf("product %s: %w", product.SKU(), err)
		}
		if _, err := sale.AddLine(product, l.Quantity); err != nil {
			return nil, err
		}
		if err := r.products.Update(product); err != nil {
			return nil, err
		}
	}

	if err := sale.Complete(req.Discount, req.Method, req.Tendered); err != nil {
		return nil, err
	}

	if err := r.sales.Add(sale); err != nil {
		return nil, err
	}
	for _, line := range sale.Lines() {
		if err := r.lines.Add(line); err != nil {
			return nil, err
		}
	}

	if sale.Method() == entity.PaymentCash && sale.Total() > 0 {
		if err := drawer.Deposit(sale.Total()); err != nil {
			return nil, err
		}
		if err := r.drawers.Update(drawer); err != nil {
			return nil, err
		}
		movement := entity.NewCashMovement(drawer.ID(), entity.MovementSale, sale.Total(), "sale "+sale.ID().String())
		if err := r.movements.Add(movement); err != nil {
			return nil, err
		}
	}

	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return &Result{Sale: sale, Lines: sale.Lines()}, nil
}

// Void reverses a completed sale: stock goes back and cash sales are refunded
// from the sale's drawer.
func (uc *UseCase) Void(ctx context.Context, saleID uuid.UUID) (*Result, error) {
	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	r, err := accessors(uow)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if uow.InTransaction() {
			_ = uow.Rollback(ctx)
		}
	}()

	// Lock order matches Execute: drawer, then products.
	unlocked, err := r.sales.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	drawer, err := r.drawers.GetForUpdate(ctx, unlocked.DrawerID())
	if err != nil {
		return nil, err
	}
	sale, err := r.sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.Void(); err != nil {
		return nil, err
	}

	lines, err := r.lines.Find(ctx, repository.Filter{"sale_id": sale.ID()})
	if err != nil {
		return nil, err
	}
	for _, line := range sortedByProduct(lines) {
		product, err := r.products.GetForUpdate(ctx, line.ProductID())
		if err != nil {
			return nil, err
		}
		if err := product.Return(line.Quantity()); err != nil {
			return nil, err
		}
		if err := r.products.Update(product); err != nil {
			return nil, err
		}
	}

	if sale.Method() == entity.PaymentCash && sale.Total() > 0 {
		if err := drawer.Withdraw(sale.Total()); err != nil {
			return nil, err
		}
		if err := r.drawers.Update(drawer); err != nil {
			return nil, err
		}
		movement := entity.NewCashMovement(drawer.ID(), entity.MovementRefund, -sale.Total(), "void "+sale.ID().String())
		if err := r.movements.Add(movement); err != nil {
			return nil, err
		}
	}

	if err := r.sales.Update(sale); err != nil {
		return nil, err
	}

	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return &Result{Sale: sale, Lines: lines}, nil
}

func (uc *UseCase) Get(ctx context.Context, saleID uuid.UUID) (*Result, error) {
	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	r, err := accessors(uow)
	if err != nil {
		return nil, err
	}
	return loadSale(ctx, r, saleID)
}

func loadSale(ctx context.Context, r *repos, id uuid.UUID) (*Result, error) {
	sale, err := r.sales.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := r.lines.Find(ctx, repository.Filter{"sale_id": id})
	if err != nil {
		return nil, err
	}
	return &Result{Sale: sale, Lines: lines}, nil
}

func accessors(uow repository.UnitOfWork) (*repos, error) {
	var (
		r   repos
		err error
	)
	if r.products, err = repository.Get[entity.Product](uow); err != nil {
		return nil, err
	}
	if r.drawers, err = repository.Get[entity.Drawer](uow); err != nil {
		return nil, err
	}
	if r.movements, err = repository.Get[entity.CashMovement](uow); err != nil {
		return nil, err
	}
	if r.sales, err = repository.Get[entity.Sale](uow); err != nil {
		return nil, err
	}
	if r.lines, err = repository.Get[entity.SaleLine](uow); err != nil {
		return nil, err
	}
	return &r, nil
}

// mergeLines sums quantities per product and orders the result by product id,
// which is also the order rows are locked in.
func mergeLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, entity.ErrEmptySale
	}
	qty := make(map[uuid.UUID]int64, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, entity.ErrInvalidQuantity
		}
		sum, err := entity.AddQuantity(qty[l.ProductID], l.Quantity)
		if err != nil {
			return nil, err
		}
		qty[l.ProductID] = sum
	}
	merged := make([]Line, 0, len(qty))
	for id, q := range qty {
		merged = append(merged, Line{ProductID: id, Quantity: q})
	}
	slices.SortFunc(merged, func(a, b Line) int {
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})
	return merged, nil
}

func sortedByProduct(lines []*entity.SaleLine) []*entity.SaleLine {
	sorted := slices.Clone(lines)
	slices.SortFunc(sorted, func(a, b *entity.SaleLine) int {
		pa, pb := a.ProductID(), b.ProductID()
		return bytes.Compare(pa[:], pb[:])
	})
	return sorted
}
