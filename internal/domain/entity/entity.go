package entity

// Kind identifies a persisted entity type. Accessors are cached per Kind.
type Kind uint8

const (
	KindProduct Kind = iota + 1
	KindDrawer
	KindCashMovement
	KindSale
	KindSaleLine
)

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindDrawer:
		return "drawer"
	case KindCashMovement:
		return "cash_movement"
	case KindSale:
		return "sale"
	case KindSaleLine:
		return "sale_line"
	default:
		return "unknown"
	}
}

// Entity is implemented by value receivers so the zero value of a type
// reports its Kind.
type Entity interface {
	Kind() Kind
}
