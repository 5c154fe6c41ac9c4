package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type TransactionSource interface {
	// ListCompleted returns Completed transactions dated within [start, end], archived ones included.
	ListCompleted(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error)
}

type ProductSource interface {
	ListActive(ctx context.Context) ([]*product.Product, error)
}

type Service struct {
	transactions TransactionSource
	products     ProductSource
}

func NewService(transactions TransactionSource, products ProductSource) *Service {
	return &Service{transactions: transactions, products: products}
}

var hundred = decimal.NewFromInt(100)

// Sales summarizes completed transactions. Both dates are inclusive calendar days.
func (s *Service) Sales(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	start, end = truncateDay(start), truncateDay(end)

	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, fmt.Errorf("%w: start must not be after end", ErrInvalidRange)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > MaxRangeDays {
		return nil, fmt.Errorf("%w: at most %d days", ErrInvalidRange, MaxRangeDays)
	}

	txs, err := s.transactions.ListCompleted(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing completed transactions: %w", err)
	}

	r := &SalesReport{
		Start:        start,
		End:          end,
		TotalRevenue: decimal.Zero,
		Daily:        make([]DailySales, days),
	}

	for i := range r.Daily {
		d := start.AddDate(0, 0, i)
		r.Daily[i] = DailySales{Date: d, DayName: d.Format("Mon"), Revenue: decimal.Zero}
	}

	byService := make(map[string]*ServiceSales)

	for _, tx := range txs {
		r.TotalRevenue = r.TotalRevenue.Add(tx.TotalAmount)
		r.TransactionCount++

		name := tx.ServiceType
		if name == "" {
			name = "Unknown"
		}

		ss, ok := byService[name]
		if !ok {
			ss = &ServiceSales{ServiceType: name, Revenue: decimal.Zero}
			byService[name] = ss
		}

		ss.TransactionCount++
		ss.Revenue = ss.Revenue.Add(tx.TotalAmount)

		if i := int(truncateDay(tx.Date).Sub(start).Hours() / 24); i >= 0 && i < days {
			r.Daily[i].Count++
			r.Daily[i].Revenue = r.Daily[i].Revenue.Add(tx.TotalAmount)
		}
	}

	for _, ss := range byService {
		ss.Share = decimal.Zero
		if r.TotalRevenue.IsPositive() {
			ss.Share = ss.Revenue.Div(r.TotalRevenue).Mul(hundred).Round(2)
		}

		r.ByService = append(r.ByService, *ss)
	}

	slices.SortFunc(r.ByService, func(a, b ServiceSales) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}

		return cmp.Compare(a.ServiceType, b.ServiceType)
	})

	return r, nil
}

// Inventory summarizes stock across non-archived products.
func (s *Service) Inventory(ctx context.Context) (*InventoryReport, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	r := &InventoryReport{TotalValue: decimal.Zero}
	categories := make(map[string]*CategoryTotal)

	for _, p := range products {
		line := ProductLine{
			ID:            p.ID,
			Code:          p.Code,
			Name:          p.Name,
			CategoryName:  p.CategoryName,
			StockQuantity: p.StockQuantity,
			MinimumStock:  p.MinimumStock,
			UnitPrice:     p.UnitPrice,
			StockValue:    p.StockValue(),
			Status:        p.Status(),
		}

		if line.CategoryName == "" {
			line.CategoryName = uncategorized
		}

		r.Products = append(r.Products, line)
		r.TotalValue = r.TotalValue.Add(line.StockValue)
		r.TotalUnits += max(line.StockQuantity, 0)

		switch line.Status {
		case product.StatusInStock:
			r.Status.InStock++
		case product.StatusLowStock:
			r.Status.LowStock++
			r.LowStock = append(r.LowStock, line)
		case product.StatusOutOfStock:
			r.Status.OutOfStock++
			r.OutOfStock = append(r.OutOfStock, line)
		}

		ct, ok := categories[line.CategoryName]
		if !ok {
			ct = &CategoryTotal{CategoryName: line.CategoryName, Value: decimal.Zero}
			categories[line.CategoryName] = ct
		}

		ct.Products++
		ct.Units += max(line.StockQuantity, 0)
		ct.Value = ct.Value.Add(line.StockValue)
	}

	for _, ct := range categories {
		r.Categories = append(r.Categories, *ct)
	}

	slices.SortFunc(r.Categories, func(a, b CategoryTotal) int {
		return cmp.Compare(a.CategoryName, b.CategoryName)
	})

	return r, nil
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
