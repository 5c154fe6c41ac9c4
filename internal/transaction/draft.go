package transaction

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Draft is the raw form input for creating or editing a transaction.
// Numeric fields stay as entered so validators can report what was wrong with them.
type Draft struct {
	CustomerName string
	ServiceType  string
	ProductID    *uuid.UUID
	ProductName  string
	TotalPages   string
	PricePerUnit string
	Quantity     string
}

// Normalize returns a copy with surrounding whitespace removed.
func (d Draft) Normalize() Draft {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.ServiceType = strings.TrimSpace(d.ServiceType)
	d.ProductName = strings.TrimSpace(d.ProductName)
	d.TotalPages = strings.TrimSpace(d.TotalPages)
	d.PricePerUnit = strings.TrimSpace(d.PricePerUnit)
	d.Quantity = strings.TrimSpace(d.Quantity)

	return d
}

// DraftFrom prefills a draft with an existing transaction's editable fields.
func DraftFrom(t *Transaction) Draft {
	d := Draft{
		CustomerName: t.CustomerName,
		ServiceType:  t.ServiceType,
		ProductName:  t.Product.Label,
		PricePerUnit: t.PricePerUnit.StringFixed(2),
		Quantity:     strconv.Itoa(t.Quantity),
	}

	if t.ProductID != nil {
		d.ProductID = new(*t.ProductID)
	}

	if t.TotalPages > 0 {
		d.TotalPages = strconv.Itoa(t.TotalPages)
	}

	return d
}

func (d Draft) price() decimal.Decimal {
	p, err := decimal.NewFromString(d.PricePerUnit)
	if err != nil {
		return decimal.Zero
	}

	return p.Round(2)
}

func (d Draft) quantity() int {
	n, err := strconv.Atoi(d.Quantity)
	if err != nil {
		return 0
	}

	return n
}

func (d Draft) pages() int {
	n, err := strconv.Atoi(d.TotalPages)
	if err != nil {
		return 0
	}

	return n
}
