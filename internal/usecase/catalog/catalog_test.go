package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
	"github.com/Xausdorf/offline-pos/internal/domain/repository/mocks"
	"github.com/Xausdorf/offline-pos/internal/usecase/catalog"
)

type fixture struct {
	uc       *catalog.UseCase
	uow      *mocks.MockUnitOfWork
	products *mocks.MockAccessor[entity.Product]
	// saveErr is returned by Do after fn succeeds, as a failed flush would be.
	saveErr error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := mocks.NewMockProvider(ctrl)
	uow := mocks.NewMockUnitOfWork(ctrl)
	products := mocks.NewMockAccessor[entity.Product](ctrl)

	provider.EXPECT().Open(gomock.Any()).Return(uow, nil).AnyTimes()
	uow.EXPECT().Close().Return(nil).AnyTimes()
	uow.EXPECT().Accessor(entity.KindProduct).Return(products, nil).AnyTimes()
	f := &fixture{uc: catalog.NewUseCase(provider), uow: uow, products: products}
	uow.EXPECT().Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			if err := fn(ctx); err != nil {
				return err
			}
			return f.saveErr
		}).AnyTimes()

	return f
}

func TestCatalog_Create(t *testing.T) {
	f := newFixture(t)

	f.products.EXPECT().Find(gomock.Any(), repository.Filter{"sku": "SKU-1"}).Return(nil, nil)
	f.products.EXPECT().Add(gomock.Any()).Return(nil)

	p, err := f.uc.Create(context.Background(), catalog.CreateRequest{SKU: " SKU-1 ", Name: "Coffee", Price: 250, Stock: 5})

	require.NoError(t, err)
	assert.Equal(t, "SKU-1", p.SKU())
	assert.Equal(t, int64(5), p.Stock())
}

func TestCatalog_CreateDuplicateSKU(t *testing.T) {
	f := newFixture(t)
	existing, err := entity.NewProduct("SKU-1", "Tea", 100, 1)
	require.NoError(t, err)

	f.products.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*entity.Product{existing}, nil)

	_, err = f.uc.Create(context.Background(), catalog.CreateRequest{SKU: "SKU-1", Name: "Coffee", Price: 250})

	require.ErrorIs(t, err, catalog.ErrDuplicateSKU)
}

func TestCatalog_CreateLosesUniqueRace(t *testing.T) {
	f := newFixture(t)
	f.saveErr = fmt.Errorf("save changes: %w: products_sku_key", repository.ErrConflict)

	f.products.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.products.EXPECT().Add(gomock.Any()).Return(nil)

	_, err := f.uc.Create(context.Background(), catalog.CreateRequest{SKU: "SKU-1", Name: "Coffee", Price: 250})

	require.ErrorIs(t, err, catalog.ErrDuplicateSKU)
}

func TestCatalog_CreateInvalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), catalog.CreateRequest{SKU: "SKU-1", Name: "Coffee", Price: -1})

	require.ErrorIs(t, err, entity.ErrInvalidPrice)
}

func TestCatalog_Update(t *testing.T) {
	f := newFixture(t)
	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 5)
	require.NoError(t, err)

	name := "Espresso"
	price := int64(300)
	active := false
	f.products.EXPECT().GetForUpdate(gomock.Any(), p.ID()).Return(p, nil)
	f.products.EXPECT().Update(p).Return(nil)

	got, err := f.uc.Update(context.Background(), p.ID(), catalog.UpdateRequest{Name: &name, Price: &price, Active: &active})

	require.NoError(t, err)
	assert.Equal(t, "Espresso", got.Name())
	assert.Equal(t, int64(300), got.Price())
	assert.False(t, got.Active())
}

func TestCatalog_UpdateRejectsBadPrice(t *testing.T) {
	f := newFixture(t)
	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 5)
	require.NoError(t, err)

	price := int64(-5)
	f.products.EXPECT().GetForUpdate(gomock.Any(), p.ID()).Return(p, nil)

	_, err = f.uc.Update(context.Background(), p.ID(), catalog.UpdateRequest{Price: &price})

	require.ErrorIs(t, err, entity.ErrInvalidPrice)
}

func TestCatalog_Restock(t *testing.T) {
	f := newFixture(t)
	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 5)
	require.NoError(t, err)

	f.products.EXPECT().GetForUpdate(gomock.Any(), p.ID()).Return(p, nil)
	f.products.EXPECT().Update(p).Return(nil)

	got, err := f.uc.Restock(context.Background(), p.ID(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Stock())
}

func TestCatalog_RestockMissingProduct(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.products.EXPECT().GetForUpdate(gomock.Any(), id).Return(nil, repository.ErrNotFound)

	_, err := f.uc.Restock(context.Background(), id, 1)

	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalog_OpenFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	boom := errors.New("pool exhausted")
	provider.EXPECT().Open(gomock.Any()).Return(nil, boom)

	_, err := catalog.NewUseCase(provider).List(context.Background())

	require.ErrorIs(t, err, boom)
}

func TestCatalog_List(t *testing.T) {
	f := newFixture(t)
	p, err := entity.NewProduct("SKU-1", "Coffee", 250, 5)
	require.NoError(t, err)

	f.products.EXPECT().List(gomock.Any()).Return([]*entity.Product{p}, nil)

	got, err := f.uc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
