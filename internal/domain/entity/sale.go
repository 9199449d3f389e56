package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySale          = errors.New("sale has no lines")
	ErrInvalidDiscount    = errors.New("invalid discount")
	ErrUnknownPayment     = errors.New("unknown payment method")
	ErrInsufficientTender = errors.New("tendered amount is less than total")
	ErrSaleNotPending     = errors.New("sale is not pending")
	ErrSaleVoided         = errors.New("sale is already voided")
	ErrSaleNotCompleted   = errors.New("sale is not completed")
)

type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleVoided    SaleStatus = "voided"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type DiscountType string

const (
	DiscountNone       DiscountType = ""
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Discount struct {
	Type  DiscountType
	Value int64
}

// Amount returns the discount in cents for subtotal. Fixed discounts are capped at the subtotal.
func (d Discount) Amount(subtotal int64) (int64, error) {
	switch d.Type {
	case DiscountNone:
		return 0, nil
	case DiscountPercentage:
		if d.Value < 0 || d.Value > 100 {
			return 0, ErrInvalidDiscount
		}
		// Split so the product never exceeds subtotal.
		return subtotal/100*d.Value + subtotal%100*d.Value/100, nil
	case DiscountFixed:
		if d.Value < 0 {
			return 0, ErrInvalidDiscount
		}
		return min(d.Value, subtotal), nil
	default:
		return 0, ErrInvalidDiscount
	}
}

type SaleLine struct {
	id        uuid.UUID
	saleID    uuid.UUID
	productID uuid.UUID
	name      string
	quantity  int64
	unitPrice int64
	total     int64
}

func ReconstructSaleLine(
	id, saleID, productID uuid.UUID,
	name string,
	quantity, unitPrice, total int64,
) *SaleLine {
	return &SaleLine{
		id:        id,
		saleID:    saleID,
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		total:     total,
	}
}

func (SaleLine) Kind() Kind { return KindSaleLine }

func (l *SaleLine) ID() uuid.UUID {
	return l.id
}

func (l *SaleLine) SaleID() uuid.UUID {
	return l.saleID
}

func (l *SaleLine) ProductID() uuid.UUID {
	return l.productID
}

func (l *SaleLine) Name() string {
	return l.name
}

func (l *SaleLine) Quantity() int64 {
	return l.quantity
}

func (l *SaleLine) UnitPrice() int64 {
	return l.unitPrice
}

func (l *SaleLine) Total() int64 {
	return l.total
}

type Sale struct {
	id        uuid.UUID
	drawerID  uuid.UUID
	subtotal  int64
	discount  int64
	total     int64
	method    PaymentMethod
	tendered  int64
	change    int64
	status    SaleStatus
	createdAt time.Time
	voidedAt  *time.Time
	lines     []*SaleLine
}

func NewSale(id, drawerID uuid.UUID) *Sale {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Sale{
		id:        id,
		drawerID:  drawerID,
		status:    SalePending,
		createdAt: time.Now().UTC(),
	}
}

func ReconstructSale(
	id, drawerID uuid.UUID,
	subtotal, discount, total int64,
	method PaymentMethod,
	tendered, change int64,
	status SaleStatus,
	createdAt time.Time,
	voidedAt *time.Time,
) *Sale {
	return &Sale{
		id:        id,
		drawerID:  drawerID,
		subtotal:  subtotal,
		discount:  discount,
		total:     total,
		method:    method,
		tendered:  tendered,
		change:    change,
		status:    status,
		createdAt: createdAt,
		voidedAt:  voidedAt,
	}
}

func (Sale) Kind() Kind { return KindSale }

func (s *Sale) ID() uuid.UUID {
	return s.id
}

func (s *Sale) DrawerID() uuid.UUID {
	return s.drawerID
}

func (s *Sale) Subtotal() int64 {
	return s.subtotal
}

func (s *Sale) Discount() int64 {
	return s.discount
}

func (s *Sale) Total() int64 {
	return s.total
}

func (s *Sale) Method() PaymentMethod {
	return s.method
}

func (s *Sale) Tendered() int64 {
	return s.tendered
}

func (s *Sale) Change() int64 {
	return s.change
}

func (s *Sale) Status() SaleStatus {
	return s.status
}

func (s *Sale) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Sale) VoidedAt() *time.Time {
	return s.voidedAt
}

// Lines returns the lines added while the sale was pending. Loaded sales have none.
func (s *Sale) Lines() []*SaleLine {
	return s.lines
}

// AddLine snapshots the product's name and price into a new line.
// Stock is not touched; callers take it from the product separately.
func (s *Sale) AddLine(p *Product, qty int64) (*SaleLine, error) {
	if s.status != SalePending {
		return nil, ErrSaleNotPending
	}
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	total, err := mulAmount(p.Price(), qty)
	if err != nil {
		return nil, err
	}
	subtotal, err := addAmount(s.subtotal, total)
	if err != nil {
		return nil, err
	}
	line := &SaleLine{
		id:        uuid.New(),
		saleID:    s.id,
		productID: p.ID(),
		name:      p.Name(),
		quantity:  qty,
		unitPrice: p.Price(),
		total:     total,
	}
	s.lines = append(s.lines, line)
	s.subtotal = subtotal
	return line, nil
}

// Complete applies the discount and settles payment. Card payments are taken
// for the exact total; cash must cover it and the difference is returned as change.
func (s *Sale) Complete(d Discount, method PaymentMethod, tendered int64) error {
	if s.status != SalePending {
		return ErrSaleNotPending
	}
	if len(s.lines) == 0 {
		return ErrEmptySale
	}
	discount, err := d.Amount(s.subtotal)
	if err != nil {
		return err
	}
	total := max(s.subtotal-discount, 0)

	switch method {
	case PaymentCash:
		if tendered < total {
			return ErrInsufficientTender
		}
	case PaymentCard:
		tendered = total
	default:
		return ErrUnknownPayment
	}

	s.discount = discount
	s.total = total
	s.method = method
	s.tendered = tendered
	s.change = tendered - total
	s.status = SaleCompleted
	return nil
}

func (s *Sale) Void() error {
	switch s.status {
	case SaleVoided:
		return ErrSaleVoided
	case SaleCompleted:
	default:
		return ErrSaleNotCompleted
	}
	now := time.Now().UTC()
	s.status = SaleVoided
	s.voidedAt = &now
	return nil
}
