package receipt

//go:generate mockgen -source=receipt.go -destination=mocks/receipt.go -package=mocks

import "time"

// Data is the payload encoded into a receipt QR code.
type Data struct {
	SaleID   string    `json:"sale_id"`
	DrawerID string    `json:"drawer_id"`
	Total    int64     `json:"total"`
	Method   string    `json:"method"`
	Items    int64     `json:"items"`
	IssuedAt time.Time `json:"issued_at"`
}

type Generator interface {
	Generate(data Data) ([]byte, error)
}
