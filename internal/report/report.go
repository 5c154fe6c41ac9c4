// Package report derives sales and inventory summaries from completed
// transactions and the current product catalog.
package report

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

var ErrInvalidRange = errors.New("invalid date range")

// MaxRangeDays bounds the daily series of a sales report.
const MaxRangeDays = 366

const uncategorized = "Uncategorized"

type SalesReport struct {
	Start            time.Time
	End              time.Time
	TotalRevenue     decimal.Decimal
	TransactionCount int
	ByService        []ServiceSales
	Daily            []DailySales
}

type ServiceSales struct {
	ServiceType      string
	TransactionCount int
	Revenue          decimal.Decimal
	// Share is the percentage of total revenue, 2 decimal places.
	Share decimal.Decimal
}

type DailySales struct {
	Date    time.Time
	DayName string
	Count   int
	Revenue decimal.Decimal
}

type InventoryReport struct {
	Products   []ProductLine
	LowStock   []ProductLine
	OutOfStock []ProductLine
	TotalValue decimal.Decimal
	TotalUnits int
	Status     StatusCounts
	Categories []CategoryTotal
}

type ProductLine struct {
	ID            uuid.UUID
	Code          string
	Name          string
	CategoryName  string
	StockQuantity int
	MinimumStock  int
	UnitPrice     decimal.Decimal
	StockValue    decimal.Decimal
	Status        product.StockStatus
}

type StatusCounts struct {
	InStock    int
	LowStock   int
	OutOfStock int
}

type CategoryTotal struct {
	CategoryName string
	Products     int
	Units        int
	Value        decimal.Decimal
}
