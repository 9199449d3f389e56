package receipt

import (
	"context"

	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/receipt"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

type UseCase struct {
	provider  repository.Provider
	generator receipt.Generator
}

func NewUseCase(provider repository.Provider, generator receipt.Generator) *UseCase {
	return &UseCase{provider: provider, generator: generator}
}

// Execute renders the QR receipt of a completed sale as PNG.
func (uc *UseCase) Execute(ctx context.Context, saleID uuid.UUID) ([]byte, error) {
	uow, err := uc.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Close() }()

	sales, err := repository.Get[entity.Sale](uow)
	if err != nil {
		return nil, err
	}
	lines, err := repository.Get[entity.SaleLine](uow)
	if err != nil {
		return nil, err
	}

	sale, err := sales.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	switch sale.Status() {
	case entity.SaleCompleted:
	case entity.SaleVoided:
		return nil, entity.ErrSaleVoided
	default:
		return nil, entity.ErrSaleNotCompleted
	}

	items, err := lines.Find(ctx, repository.Filter{"sale_id": saleID})
	if err != nil {
		return nil, err
	}
	var count int64
	for _, l := range items {
		count += l.Quantity()
	}

	return uc.generator.Generate(receipt.Data{
		SaleID:   sale.ID().String(),
		DrawerID: sale.DrawerID().String(),
		Total:    sale.Total(),
		Method:   string(sale.Method()),
		Items:    count,
		IssuedAt: sale.CreatedAt(),
	})
}
