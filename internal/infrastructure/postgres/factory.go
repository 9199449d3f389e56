package postgres

import (
	"errors"
	"fmt"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
)

var ErrUnsupportedKind = errors.New("unsupported entity kind")

// Factory builds accessors over *Session for every entity kind.
type Factory struct{}

var _ repository.AccessorFactory = Factory{}

func (Factory) NewAccessor(kind entity.Kind, session repository.Session) (any, error) {
	s, ok := session.(*Session)
	if !ok {
		return nil, fmt.Errorf("postgres accessor needs *postgres.Session, got %T", session)
	}

	switch kind {
	case entity.KindProduct:
		return newAccessor(s, products), nil
	case entity.KindDrawer:
		return newAccessor(s, drawers), nil
	case entity.KindCashMovement:
		return newAccessor(s, movements), nil
	case entity.KindSale:
		return newAccessor(s, sales), nil
	case entity.KindSaleLine:
		return newAccessor(s, saleLines), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}
