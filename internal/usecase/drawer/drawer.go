package drawer

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

var ErrAlreadyOpen = errors.New("cashier already has an open drawer")

// Report is the end-of-shift count of a drawer.
type Report struct {
	DrawerID   uuid.UUID
	Expected   int64
	Counted    int64
	Difference int64
}

type UseCase struct {
	provider repository.Provider
}

func NewUseCase(provider repository.Provider) *UseCase {
	return &UseCase{provider: provider}
}

func (uc *UseCase) Open(ctx context.Context, cashier string, openingBalance int64) (*entity.Drawer, error) {
	d, err := entity.OpenDrawer(cashier, openingBalance)
	if err != nil {
		return nil, err
	}

	err = uc.do(ctx, func(ctx context.Context, r *repos) error {
		open, err := r.drawers.Find(ctx, repository.Filter{
			"cashier": d.Cashier(),
			"status":  string(entity.DrawerOpen),
		})
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return ErrAlreadyOpen
		}
		if err := r.drawers.Add(d); err != nil {
			return err
		}
		return r.movements.Add(entity.NewCashMovement(d.ID(), entity.MovementOpening, openingBalance, ""))
	})
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrAlreadyOpen
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (uc *UseCase) CashIn(ctx context.Context, id uuid.UUID, amount int64, note string) (*entity.Drawer, error) {
	return uc.move(ctx, id, func(d *entity.Drawer) (*entity.CashMovement, error) {
		if err := d.Deposit(amount); err != nil {
			return nil, err
		}
		return entity.NewCashMovement(d.ID(), entity.MovementCashIn, amount, note), nil
	})
}

func (uc *UseCase) CashOut(ctx context.Context, id uuid.UUID, amount int64, note string) (*entity.Drawer, error) {
	return uc.move(ctx, id, func(d *entity.Drawer) (*entity.CashMovement, error) {
		if err := d.Withdraw(amount); err != nil {
			return nil, err
		}
		return entity.NewCashMovement(d.ID(), entity.MovementCashOut, -amount, note), nil
	})
}

// Close counts the drawer out. The closing movement carries the over/short
// difference and does not change the ledger balance.
func (uc *UseCase) Close(ctx context.Context, id uuid.UUID, counted int64) (*Report, error) {
	var report *Report
	_, err := uc.move(ctx, id, func(d *entity.Drawer) (*entity.CashMovement, error) {
		diff, err := d.Close(counted)
		if err != nil {
			return nil, err
		}
		report = &Report{DrawerID: d.ID(), Expected: d.Balance(), Counted: counted, Difference: diff}
		return entity.NewCashMovement(d.ID(), entity.MovementClosing, diff, ""), nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (uc *UseCase) Get(ctx context.Context, id uuid.UUID) (*entity.Drawer, error) {
	var d *entity.Drawer
	err := uc.read(ctx, func(ctx context.Context, r *repos) error {
		var err error
		d, err = r.drawers.Get(ctx, id)
		return err
	})
	return d, err
}

func (uc *UseCase) Movements(ctx context.Context, id uuid.UUID) ([]*entity.CashMovement, error) {
	var list []*entity.CashMovement
	err := uc.read(ctx, func(ctx context.Context, r *repos) error {
		if _, err := r.drawers.Get(ctx, id); err != nil {
			return err
		}
		var err error
		list, err = r.movements.Find(ctx, repository.Filter{"drawer_id": id})
		return err
	})
	return list, err
}

func (uc *UseCase) move(
	ctx context.Context,
	id uuid.UUID,
	apply func(*entity.Drawer) (*entity.CashMovement, error),
) (*entity.Drawer, error) {
	var d *entity.Drawer
	err := uc.do(ctx, func(ctx context.Context, r *repos) error {
		var err error
		d, err = r.drawers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		m, err := apply(d)
		if err != nil {
			return err
		}
		if err := r.drawers.Update(d); err != nil {
			return err
		}
		return r.movements.Add(m)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

type repos struct {
	drawers   repository.Accessor[entity.Drawer]
	movements repository.Accessor[entity.CashMovement]
}

func (uc *UseCase) do(ctx context.Context, fn func(context.Context, *repos) error) error {
	return uc.with(ctx, true, fn)
}

func (uc *UseCase) read(ctx context.Context, fn func(context.Context, *repos) error) error {
	return uc.with(ctx, false, fn)
}

func (uc *UseCase) with(ctx context.Context, write bool, fn func(context.Context, *repos) error) error {
	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = uow.Close() }()

	drawers, err := repository.Get[entity.Drawer](uow)
	if err != nil {
		return err
	}
	movements, err := repository.Get[entity.CashMovement](uow)
	if err != nil {
		return err
	}
	r := &repos{drawers: drawers, movements: movements}

	if !write {
		return fn(ctx, r)
	}
	return uow.Do(ctx, func(ctx context.Context) error {
		return fn(ctx, r)
	})
}
