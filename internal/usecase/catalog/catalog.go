package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

var ErrDuplicateSKU = errors.New("sku already exists")

type CreateRequest struct {
	SKU   string
	Name  string
	Price int64
	Stock int64
}

// UpdateRequest changes only the fields that are set.
type UpdateRequest struct {
	Name   *string
	Price  *int64
	Active *bool
}

type UseCase struct {
	provider repository.Provider
}

func NewUseCase(provider repository.Provider) *UseCase {
	return &UseCase{provider: provider}
}

func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*entity.Product, error) {
	product, err := entity.NewProduct(req.SKU, req.Name, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	err = uow.Do(ctx, func(ctx context.Context) error {
		products, err := repository.Get[entity.Product](uow)
		if err != nil {
			return err
		}
		existing, err := products.Find(ctx, repository.Filter{"sku": product.SKU()})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrDuplicateSKU
		}
		return products.Add(product)
	})
	// A concurrent create can pass Find; the unique index decides.
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrDuplicateSKU
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *UseCase) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*entity.Product, error) {
	return uc.modify(ctx, id, func(p *entity.Product) error {
		if req.Name != nil {
			if err := p.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Price != nil {
			if err := p.Reprice(*req.Price); err != nil {
				return err
			}
		}
		if req.Active != nil {
			p.SetActive(*req.Active)
		}
		return nil
	})
}

func (uc *UseCase) Restock(ctx context.Context, id uuid.UUID, qty int64) (*entity.Product, error) {
	return uc.modify(ctx, id, func(p *entity.Product) error {
		return p.Restock(qty)
	})
}

func (uc *UseCase) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	products, err := repository.Get[entity.Product](uow)
	if err != nil {
		return nil, err
	}
	return products.Get(ctx, id)
}

func (uc *UseCase) List(ctx context.Context) ([]*entity.Product, error) {
	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	products, err := repository.Get[entity.Product](uow)
	if err != nil {
		return nil, err
	}
	return products.List(ctx)
}

func (uc *UseCase) modify(ctx context.Context, id uuid.UUID, apply func(*entity.Product) error) (*entity.Product, error) {
	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	var product *entity.Product
	err = uow.Do(ctx, func(ctx context.Context) error {
		products, err := repository.Get[entity.Product](uow)
		if err != nil {
			return err
		}
		product, err = products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(product); err != nil {
			return err
		}
		return products.Update(product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
