package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOutOfStock       = errors.New("out of stock")
	ErrInactiveProduct  = errors.New("product is inactive")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidPrice     = errors.New("price must not be negative")
	ErrSKURequired      = errors.New("sku is required")
	ErrNameRequired     = errors.New("name is required")
	ErrNegativeQuantity = errors.New("stock must not be negative")
)

type Product struct {
	id        uuid.UUID
	sku       string
	name      string
	price     int64
	stock     int64
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewProduct(sku, name string, price, stock int64) (*Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" {
		return nil, ErrSKURequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrNegativeQuantity
	}
	now := time.Now().UTC()
	return &Product{
		id:        uuid.New(),
		sku:       sku,
		name:      name,
		price:     price,
		stock:     stock,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructProduct(
	id uuid.UUID,
	sku, name string,
	price, stock int64,
	active bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:        id,
		sku:       sku,
		name:      name,
		price:     price,
		stock:     stock,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (Product) Kind() Kind { return KindProduct }

func (p *Product) ID() uuid.UUID {
	return p.id
}

func (p *Product) SKU() string {
	return p.sku
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() int64 {
	return p.price
}

func (p *Product) Stock() int64 {
	return p.stock
}

func (p *Product) Active() bool {
	return p.active
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	p.name = name
	p.touch()
	return nil
}

func (p *Product) Reprice(price int64) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	p.price = price
	p.touch()
	return nil
}

func (p *Product) SetActive(active bool) {
	p.active = active
	p.touch()
}

func (p *Product) Restock(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	stock, err := addAmount(p.stock, qty)
	if err != nil {
		return err
	}
	p.stock = stock
	p.touch()
	return nil
}

// Take removes qty units from stock for a sale.
func (p *Product) Take(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if !p.active {
		return ErrInactiveProduct
	}
	if p.stock < qty {
		return ErrOutOfStock
	}
	p.stock -= qty
	p.touch()
	return nil
}

// Return puts units of a voided sale back into stock. Inactive products accept returns.
func (p *Product) Return(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	stock, err := addAmount(p.stock, qty)
	if err != nil {
		return err
	}
	p.stock = stock
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.updatedAt = time.Now().UTC()
}
