package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

type transactionResponse struct {
	ID              uuid.UUID                `json:"id"`
	QueueNumber     string                   `json:"queue_number"`
	TransactionID   string                   `json:"transaction_id"`
	CustomerName    string                   `json:"customer_name"`
	ServiceType     string                   `json:"service_type"`
	ProductCategory transaction.CategoryKind `json:"product_category"`
	ProductLabel    string                   `json:"product_label"`
	ProductField    string                   `json:"product_field,omitempty"`
	ProductID       *uuid.UUID               `json:"product_id,omitempty"`
	TotalPages      int                      `json:"total_pages,omitempty"`
	PricePerUnit    string                   `json:"price_per_unit"`
	Quantity        int                      `json:"quantity"`
	TotalAmount     string                   `json:"total_amount"`
	Status          transaction.Status       `json:"status"`
	Date            string                   `json:"date"`
	IsArchived      bool                     `json:"is_archived"`
	ArchivedAt      *time.Time               `json:"archived_at,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       *time.Time               `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		QueueNumber:     tx.QueueNumber,
		TransactionID:   tx.TransactionID,
		CustomerName:    tx.CustomerName,
		ServiceType:     tx.ServiceType,
		ProductCategory: tx.Product.Category,
		ProductLabel:    tx.Product.Label,
		ProductField:    tx.Product.FieldName(),
		ProductID:       tx.ProductID,
		TotalPages:      tx.TotalPages,
		PricePerUnit:    tx.PricePerUnit.StringFixed(2),
		Quantity:        tx.Quantity,
		TotalAmount:     tx.TotalAmount.StringFixed(2),
		Status:          tx.Status,
		Date:            tx.Date.Format(time.DateOnly),
		IsArchived:      tx.Archived,
		ArchivedAt:      tx.ArchivedAt,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
