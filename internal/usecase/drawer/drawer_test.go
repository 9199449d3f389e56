package drawer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
	"github.com/Xausdorf/offline-pos/internal/domain/repository/mocks"
	"github.com/Xausdorf/offline-pos/internal/usecase/drawer"
)

type fixture struct {
	uc        *drawer.UseCase
	drawers   *mocks.MockAccessor[entity.Drawer]
	movements *mocks.MockAccessor[entity.CashMovement]
	staged    []*entity.CashMovement
	// saveErr is returned by Do after fn succeeds, as a failed flush would be.
	saveErr error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := mocks.NewMockProvider(ctrl)
	uow := mocks.NewMockUnitOfWork(ctrl)
	f := &fixture{
		drawers:   mocks.NewMockAccessor[entity.Drawer](ctrl),
		movements: mocks.NewMockAccessor[entity.CashMovement](ctrl),
	}

	provider.EXPECT().Open(gomock.Any()).Return(uow, nil).AnyTimes()
	uow.EXPECT().Close().Return(nil).AnyTimes()
	uow.EXPECT().Accessor(entity.KindDrawer).Return(f.drawers, nil).AnyTimes()
	uow.EXPECT().Accessor(entity.KindCashMovement).Return(f.movements, nil).AnyTimes()
	uow.EXPECT().Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			if err := fn(ctx); err != nil {
				return err
			}
			return f.saveErr
		}).AnyTimes()
	f.movements.EXPECT().Add(gomock.Any()).
		DoAndReturn(func(m *entity.CashMovement) error {
			f.staged = append(f.staged, m)
			return nil
		}).AnyTimes()

	f.uc = drawer.NewUseCase(provider)
	return f
}

func openDrawer(t *testing.T, opening int64) *entity.Drawer {
	t.Helper()
	d, err := entity.OpenDrawer("alice", opening)
	require.NoError(t, err)
	return d
}

func TestDrawer_Open(t *testing.T) {
	f := newFixture(t)

	f.drawers.EXPECT().Find(gomock.Any(), repository.Filter{"cashier": "alice", "status": "open"}).Return(nil, nil)
	f.drawers.EXPECT().Add(gomock.Any()).Return(nil)

	d, err := f.uc.Open(context.Background(), "alice", 10000)

	require.NoError(t, err)
	assert.Equal(t, int64(10000), d.Balance())
	require.Len(t, f.staged, 1)
	assert.Equal(t, entity.MovementOpening, f.staged[0].Type())
	assert.Equal(t, int64(10000), f.staged[0].Amount())
}

func TestDrawer_OpenTwice(t *testing.T) {
	f := newFixture(t)

	f.drawers.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]*entity.Drawer{openDrawer(t, 0)}, nil)

	_, err := f.uc.Open(context.Background(), "alice", 500)

	require.ErrorIs(t, err, drawer.ErrAlreadyOpen)
	assert.Empty(t, f.staged)
}

func TestDrawer_OpenLosesUniqueRace(t *testing.T) {
	f := newFixture(t)
	f.saveErr = fmt.Errorf("save changes: %w: drawers_one_open_per_cashier", repository.ErrConflict)

	f.drawers.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.drawers.EXPECT().Add(gomock.Any()).Return(nil)

	_, err := f.uc.Open(context.Background(), "alice", 500)

	require.ErrorIs(t, err, drawer.ErrAlreadyOpen)
}

func TestDrawer_CashInOut(t *testing.T) {
	f := newFixture(t)
	d := openDrawer(t, 1000)

	f.drawers.EXPECT().GetForUpdate(gomock.Any(), d.ID()).Return(d, nil).Times(3)
	f.drawers.EXPECT().Update(d).Return(nil).Times(2)

	_, err := f.uc.CashIn(context.Background(), d.ID(), 500, "float top-up")
	require.NoError(t, err)
	_, err = f.uc.CashOut(context.Background(), d.ID(), 300, "bank drop")
	require.NoError(t, err)
	_, err = f.uc.CashOut(context.Background(), d.ID(), 5000, "")
	require.ErrorIs(t, err, entity.ErrInsufficientCash)

	assert.Equal(t, int64(1200), d.Balance())
	require.Len(t, f.staged, 2)
	assert.Equal(t, int64(-300), f.staged[1].Amount())
	assert.Equal(t, "bank drop", f.staged[1].Note())
}

func TestDrawer_CloseReportsDifference(t *testing.T) {
	f := newFixture(t)
	d := openDrawer(t, 1000)

	f.drawers.EXPECT().GetForUpdate(gomock.Any(), d.ID()).Return(d, nil).Times(2)
	f.drawers.EXPECT().Update(d).Return(nil)

	report, err := f.uc.Close(context.Background(), d.ID(), 950)

	require.NoError(t, err)
	assert.Equal(t, &drawer.Report{DrawerID: d.ID(), Expected: 1000, Counted: 950, Difference: -50}, report)
	require.Len(t, f.staged, 1)
	assert.Equal(t, entity.MovementClosing, f.staged[0].Type())
	assert.False(t, d.IsOpen())

	_, err = f.uc.Close(context.Background(), d.ID(), 950)
	require.ErrorIs(t, err, entity.ErrDrawerClosed)
}

func TestDrawer_MovementsOfUnknownDrawer(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.drawers.EXPECT().Get(gomock.Any(), id).Return(nil, repository.ErrNotFound)

	_, err := f.uc.Movements(context.Background(), id)

	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDrawer_Movements(t *testing.T) {
	f := newFixture(t)
	d := openDrawer(t, 1000)
	list := []*entity.CashMovement{
		entity.NewCashMovement(d.ID(), entity.MovementOpening, 1000, ""),
		entity.NewCashMovement(d.ID(), entity.MovementSale, 250, ""),
	}

	f.drawers.EXPECT().Get(gomock.Any(), d.ID()).Return(d, nil)
	f.movements.EXPECT().Find(gomock.Any(), repository.Filter{"drawer_id": d.ID()}).Return(list, nil)

	got, err := f.uc.Movements(context.Background(), d.ID())

	require.NoError(t, err)
	assert.Equal(t, int64(1250), entity.LedgerBalance(got))
}
