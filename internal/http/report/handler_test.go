package report_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httpreport "github.com/MrJamesThe3rd/copycorner/internal/http/report"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/report"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

func setup(t *testing.T) (*report.MockTransactionSource, *report.MockProductSource, chi.Router) {
	ctrl := gomock.NewController(t)
	txs := report.NewMockTransactionSource(ctrl)
	products := report.NewMockProductSource(ctrl)

	r := chi.NewRouter()
	r.Route("/reports", httpreport.NewHandler(report.NewService(txs, products)).Routes)

	return txs, products, r
}

func get(r chi.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_Sales(t *testing.T) {
	txs, _, r := setup(t)

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	txs.EXPECT().ListCompleted(gomock.Any(), start, end).Return([]*transaction.Transaction{
		{ServiceType: "Photocopying", TotalAmount: decimal.NewFromInt(40), Status: transaction.StatusCompleted, Date: start},
	}, nil)

	rec := get(r, "/reports/sales?start_date=2026-03-09&end_date=2026-03-10")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			TotalRevenue string `json:"total_revenue"`
			Daily        []struct {
				Date    string `json:"date"`
				DayName string `json:"day_name"`
				Revenue string `json:"revenue"`
			} `json:"daily"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "40.00", env.Data.TotalRevenue)
	require.Len(t, env.Data.Daily, 2)
	assert.Equal(t, "Mon", env.Data.Daily[0].DayName)
	assert.Equal(t, "0.00", env.Data.Daily[1].Revenue)
}

func TestHandler_SalesBadInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "MissingStart", target: "/reports/sales?end_date=2026-03-10"},
		{name: "BadEnd", target: "/reports/sales?start_date=2026-03-10&end_date=10/03/2026"},
		{name: "Reversed", target: "/reports/sales?start_date=2026-03-10&end_date=2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, r := setup(t)
			assert.Equal(t, http.StatusBadRequest, get(r, tt.target).Code)
		})
	}
}

func TestHandler_Inventory(t *testing.T) {
	_, products, r := setup(t)
	products.EXPECT().ListActive(gomock.Any()).Return([]*product.Product{
		{Name: "A4 Bond", CategoryName: "Paper", StockQuantity: 0, MinimumStock: 5, UnitPrice: decimal.NewFromInt(1)},
		{Name: "Shirt M", CategoryName: "T-shirt", StockQuantity: 10, MinimumStock: 5, UnitPrice: decimal.NewFromInt(150)},
	}, nil)

	rec := get(r, "/reports/inventory")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data struct {
			TotalValue string `json:"total_value"`
			OutOfStock []struct {
				Name string `json:"name"`
			} `json:"out_of_stock"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "1500.00", env.Data.TotalValue)
	require.Len(t, env.Data.OutOfStock, 1)
	assert.Equal(t, "A4 Bond", env.Data.OutOfStock[0].Name)
}
