package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	httpproduct "github.com/MrJamesThe3rd/copycorner/internal/http/product"
	"github.com/MrJamesThe3rd/copycorner/internal/http/respond"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sales", h.sales)
	r.Get("/inventory", h.inventory)
}

type serviceSalesResponse struct {
	ServiceType      string `json:"service_type"`
	TransactionCount int    `json:"transaction_count"`
	Revenue          string `json:"revenue"`
	Share            string `json:"share"`
}

type dailySalesResponse struct {
	Date    string `json:"date"`
	DayName string `json:"day_name"`
	Count   int    `json:"count"`
	Revenue string `json:"revenue"`
}

type salesResponse struct {
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date"`
	TotalRevenue     string                 `json:"total_revenue"`
	TransactionCount int                    `json:"transaction_count"`
	ByService        []serviceSalesResponse `json:"by_service"`
	Daily            []dailySalesResponse   `json:"daily"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.Parse(time.DateOnly, q.Get("start_date"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}

	end, err := time.Parse(time.DateOnly, q.Get("end_date"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	rep, err := h.svc.Sales(r.Context(), start, end)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	resp := salesResponse{
		StartDate:        rep.Start.Format(time.DateOnly),
		EndDate:          rep.End.Format(time.DateOnly),
		TotalRevenue:     money(rep.TotalRevenue),
		TransactionCount: rep.TransactionCount,
		ByService:        make([]serviceSalesResponse, len(rep.ByService)),
		Daily:            make([]dailySalesResponse, len(rep.Daily)),
	}

	for i, s := range rep.ByService {
		resp.ByService[i] = serviceSalesResponse{
			ServiceType:      s.ServiceType,
			TransactionCount: s.TransactionCount,
			Revenue:          money(s.Revenue),
			Share:            money(s.Share),
		}
	}

	for i, d := range rep.Daily {
		resp.Daily[i] = dailySalesResponse{
			Date:    d.Date.Format(time.DateOnly),
			DayName: d.DayName,
			Count:   d.Count,
			Revenue: money(d.Revenue),
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type statusCountsResponse struct {
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

type categoryTotalResponse struct {
	CategoryName string `json:"category_name"`
	Products     int    `json:"products"`
	Units        int    `json:"units"`
	Value        string `json:"value"`
}

type inventoryResponse struct {
	Products   []httpproduct.Response  `json:"products"`
	LowStock   []httpproduct.Response  `json:"low_stock"`
	OutOfStock []httpproduct.Response  `json:"out_of_stock"`
	TotalValue string                  `json:"total_value"`
	TotalUnits int                     `json:"total_units"`
	Status     statusCountsResponse    `json:"status"`
	Categories []categoryTotalResponse `json:"categories"`
}

func toLines(lines []report.ProductLine) []httpproduct.Response {
	resp := make([]httpproduct.Response, len(lines))
	for i, l := range lines {
		resp[i] = httpproduct.ToResponse(&product.Product{
			ID:            l.ID,
			Code:          l.Code,
			Name:          l.Name,
			CategoryName:  l.CategoryName,
			StockQuantity: l.StockQuantity,
			MinimumStock:  l.MinimumStock,
			UnitPrice:     l.UnitPrice,
		})
	}

	return resp
}

func (h *Handler) inventory(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Inventory(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	resp := inventoryResponse{
		Products:   toLines(rep.Products),
		LowStock:   toLines(rep.LowStock),
		OutOfStock: toLines(rep.OutOfStock),
		TotalValue: money(rep.TotalValue),
		TotalUnits: rep.TotalUnits,
		Status: statusCountsResponse{
			InStock:    rep.Status.InStock,
			LowStock:   rep.Status.LowStock,
			OutOfStock: rep.Status.OutOfStock,
		},
		Categories: make([]categoryTotalResponse, len(rep.Categories)),
	}

	for i, c := range rep.Categories {
		resp.Categories[i] = categoryTotalResponse{
			CategoryName: c.CategoryName,
			Products:     c.Products,
			Units:        c.Units,
			Value:        money(c.Value),
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
