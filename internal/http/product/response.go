package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

type Response struct {
	ID            uuid.UUID           `json:"id"`
	Code          string              `json:"code"`
	Name          string              `json:"name"`
	CategoryName  string              `json:"category_name"`
	StockQuantity int                 `json:"stock_quantity"`
	MinimumStock  int                 `json:"minimum_stock"`
	UnitPrice     string              `json:"unit_price"`
	StockValue    string              `json:"stock_value"`
	Status        product.StockStatus `json:"status"`
	Archived      bool                `json:"archived"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at,omitempty"`
}

// ToResponse is shared with the service type and import handlers.
func ToResponse(p *product.Product) Response {
	return Response{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		CategoryName:  p.CategoryName,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		UnitPrice:     p.UnitPrice.StringFixed(2),
		StockValue:    p.StockValue().StringFixed(2),
		Status:        p.Status(),
		Archived:      p.Archived,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToResponseList(products []*product.Product) []Response {
	resp := make([]Response, len(products))
	for i, p := range products {
		resp[i] = ToResponse(p)
	}

	return resp
}
