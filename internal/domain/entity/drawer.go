package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsufficientCash = errors.New("insufficient cash in drawer")
	ErrNegativeAmount   = errors.New("amount must be positive")
	ErrDrawerClosed     = errors.New("drawer is closed")
	ErrCashierRequired  = errors.New("cashier is required")
)

type DrawerStatus string

const (
	DrawerOpen   DrawerStatus = "open"
	DrawerClosed DrawerStatus = "closed"
)

// Drawer is one cashier shift on a cash drawer, from the opening float to the counted close.
type Drawer struct {
	id             uuid.UUID
	cashier        string
	openingBalance int64
	balance        int64
	countedBalance int64
	status         DrawerStatus
	openedAt       time.Time
	closedAt       *time.Time
}

func OpenDrawer(cashier string, openingBalance int64) (*Drawer, error) {
	cashier = strings.TrimSpace(cashier)
	if cashier == "" {
		return nil, ErrCashierRequired
	}
	if openingBalance < 0 {
		return nil, ErrNegativeAmount
	}
	return &Drawer{
		id:             uuid.New(),
		cashier:        cashier,
		openingBalance: openingBalance,
		balance:        openingBalance,
		status:         DrawerOpen,
		openedAt:       time.Now().UTC(),
	}, nil
}

func ReconstructDrawer(
	id uuid.UUID,
	cashier string,
	openingBalance, balance, countedBalance int64,
	status DrawerStatus,
	openedAt time.Time,
	closedAt *time.Time,
) *Drawer {
	return &Drawer{
		id:             id,
		cashier:        cashier,
		openingBalance: openingBalance,
		balance:        balance,
		countedBalance: countedBalance,
		status:         status,
		openedAt:       openedAt,
		closedAt:       closedAt,
	}
}

func (Drawer) Kind() Kind { return KindDrawer }

func (d *Drawer) ID() uuid.UUID {
	return d.id
}

func (d *Drawer) Cashier() string {
	return d.cashier
}

func (d *Drawer) OpeningBalance() int64 {
	return d.openingBalance
}

func (d *Drawer) Balance() int64 {
	return d.balance
}

func (d *Drawer) CountedBalance() int64 {
	return d.countedBalance
}

func (d *Drawer) Status() DrawerStatus {
	return d.status
}

func (d *Drawer) OpenedAt() time.Time {
	return d.openedAt
}

func (d *Drawer) ClosedAt() *time.Time {
	return d.closedAt
}

func (d *Drawer) IsOpen() bool {
	return d.status == DrawerOpen
}

func (d *Drawer) Deposit(amount int64) error {
	if !d.IsOpen() {
		return ErrDrawerClosed
	}
	if amount <= 0 {
		return ErrNegativeAmount
	}
	balance, err := addAmount(d.balance, amount)
	if err != nil {
		return err
	}
	d.balance = balance
	return nil
}

func (d *Drawer) Withdraw(amount int64) error {
	if !d.IsOpen() {
		return ErrDrawerClosed
	}
	if amount <= 0 {
		return ErrNegativeAmount
	}
	if d.balance < amount {
		return ErrInsufficientCash
	}
	d.balance -= amount
	return nil
}

// Close records the counted cash and returns counted minus expected:
// positive when the drawer is over, negative when it is short.
func (d *Drawer) Close(counted int64) (int64, error) {
	if !d.IsOpen() {
		return 0, ErrDrawerClosed
	}
	if counted < 0 {
		return 0, ErrNegativeAmount
	}
	now := time.Now().UTC()
	d.countedBalance = counted
	d.status = DrawerClosed
	d.closedAt = &now
	return counted - d.balance, nil
}
