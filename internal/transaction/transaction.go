package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// CategoryKind selects which product label slot a transaction uses.
type CategoryKind string

const (
	KindPaper    CategoryKind = "Paper"
	KindTshirt   CategoryKind = "Tshirt"
	KindSupplies CategoryKind = "Supplies"
	KindOther    CategoryKind = "Other"
)

// KindOf maps a product category name to its kind. Unknown and empty names are KindOther.
func KindOf(categoryName string) CategoryKind {
	key := strings.ToLower(strings.TrimSpace(categoryName))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)

	switch key {
	case "paper":
		return KindPaper
	case "tshirt", "tshirts":
		return KindTshirt
	case "supplies", "schoolsupplies", "supply":
		return KindSupplies
	default:
		return KindOther
	}
}

// ProductLabel is the display name of the selected product, keyed by category.
type ProductLabel struct {
	Category CategoryKind
	Label    string
}

// FieldName is the legacy form field that carried the label for the category.
func (l ProductLabel) FieldName() string {
	switch l.Category {
	case KindPaper:
		return "paper_type"
	case KindTshirt:
		return "size_type"
	case KindSupplies:
		return "supply_type"
	default:
		return ""
	}
}

// Transaction is a customer order.
type Transaction struct {
	ID            uuid.UUID
	QueueNumber   string
	TransactionID string
	CustomerName  string
	ServiceType   string
	Product       ProductLabel
	ProductID     *uuid.UUID
	TotalPages    int
	PricePerUnit  decimal.Decimal
	Quantity      int
	TotalAmount   decimal.Decimal
	Status        Status
	Date          time.Time
	Archived      bool
	ArchivedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ItemsNeeded is the stock the transaction consumes on completion.
func (t *Transaction) ItemsNeeded() int {
	return ItemsNeeded(t.Product.Category, t.TotalPages, t.Quantity)
}

func (t *Transaction) clone() *Transaction {
	c := *t

	if t.ProductID != nil {
		c.ProductID = new(*t.ProductID)
	}

	if t.ArchivedAt != nil {
		c.ArchivedAt = new(*t.ArchivedAt)
	}

	if t.UpdatedAt != nil {
		c.UpdatedAt = new(*t.UpdatedAt)
	}

	return &c
}

func FormatTransactionID(seq int64) string {
	return fmt.Sprintf("T-%03d", seq)
}

func FormatQueueNumber(seq int64) string {
	return fmt.Sprintf("%03d", seq)
}
