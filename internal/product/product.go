package product

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateName = errors.New("product name already exists")
	ErrInvalid       = errors.New("invalid product")
)

// DefaultMinimumStock is used when a product is created without a minimum stock level.
const DefaultMinimumStock = 5

// StockStatus is derived from the stock level, never stored.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// Product is a sellable inventory item.
type Product struct {
	ID            uuid.UUID
	Code          string
	Name          string
	CategoryName  string
	StockQuantity int
	MinimumStock  int
	UnitPrice     decimal.Decimal
	Archived      bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (p *Product) Status() StockStatus {
	return StatusFor(p.StockQuantity, p.MinimumStock)
}

// StockValue is stock quantity times unit price.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity))).Round(2)
}

func StatusFor(stock, minimum int) StockStatus {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= minimum:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// FormatCode renders the display code for a product sequence number.
func FormatCode(seq int64) string {
	return fmt.Sprintf("PROD_%03d", seq)
}
