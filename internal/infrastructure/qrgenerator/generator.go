package qrgenerator

import (
	"encoding/json"
	"fmt"

	qr "github.com/skip2/go-qrcode"

	"github.com/Xausdorf/offline-pos/internal/domain/receipt"
)

const DefaultSize = 256

type Generator struct {
	size  int
	level qr.RecoveryLevel
}

func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{size: size, level: qr.Medium}
}

// Generate renders data as JSON inside a PNG QR code.
func (g *Generator) Generate(data receipt.Data) ([]byte, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	png, err := qr.Encode(string(content), g.level, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode receipt qr: %w", err)
	}
	return png, nil
}
