package entity

import (
	"time"

	"github.com/google/uuid"
)

type MovementType string

const (
	MovementOpening MovementType = "opening"
	MovementSale    MovementType = "sale"
	MovementRefund  MovementType = "refund"
	MovementCashIn  MovementType = "cash_in"
	MovementCashOut MovementType = "cash_out"
	MovementClosing MovementType = "closing"
)

// CashMovement is a ledger row for a drawer. Amounts are signed: money leaving
// the drawer is negative. Closing rows carry the over/short difference and are
// not part of the balance.
type CashMovement struct {
	id        uuid.UUID
	drawerID  uuid.UUID
	typ       MovementType
	amount    int64
	note      string
	createdAt time.Time
}

func NewCashMovement(drawerID uuid.UUID, typ MovementType, amount int64, note string) *CashMovement {
	return &CashMovement{
		id:        uuid.New(),
		drawerID:  drawerID,
		typ:       typ,
		amount:    amount,
		note:      note,
		createdAt: time.Now().UTC(),
	}
}

func ReconstructCashMovement(
	id, drawerID uuid.UUID,
	typ MovementType,
	amount int64,
	note string,
	createdAt time.Time,
) *CashMovement {
	return &CashMovement{
		id:        id,
		drawerID:  drawerID,
		typ:       typ,
		amount:    amount,
		note:      note,
		createdAt: createdAt,
	}
}

func (CashMovement) Kind() Kind { return KindCashMovement }

func (m *CashMovement) ID() uuid.UUID {
	return m.id
}

func (m *CashMovement) DrawerID() uuid.UUID {
	return m.drawerID
}

func (m *CashMovement) Type() MovementType {
	return m.typ
}

func (m *CashMovement) Amount() int64 {
	return m.amount
}

func (m *CashMovement) Note() string {
	return m.note
}

func (m *CashMovement) CreatedAt() time.Time {
	return m.createdAt
}

// LedgerBalance sums movements that affect the drawer balance.
func LedgerBalance(movements []*CashMovement) int64 {
	var total int64
	for _, m := range movements {
		if m.typ == MovementClosing {
			continue
		}
		total += m.amount
	}
	return total
}
