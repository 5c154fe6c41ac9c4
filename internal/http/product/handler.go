package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/copycorner/internal/http/respond"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

type Handler struct {
	svc *product.Service
}

func NewHandler(svc *product.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/archive", h.archive)
	r.Post("/{id}/restore", h.restore)
}

type productRequest struct {
	Name          string               `json:"name"`
	CategoryName  string               `json:"category_name"`
	StockQuantity int                  `json:"stock_quantity"`
	MinimumStock  *int                 `json:"minimum_stock"`
	UnitPrice     respond.NumberString `json:"unit_price"`
}

func (req productRequest) toParams() (product.CreateParams, error) {
	params := product.CreateParams{
		Name:          req.Name,
		CategoryName:  req.CategoryName,
		StockQuantity: req.StockQuantity,
		MinimumStock:  req.MinimumStock,
	}

	if req.UnitPrice != "" {
		price, err := decimal.NewFromString(req.UnitPrice.String())
		if err != nil {
			return params, err
		}

		params.UnitPrice = price
	}

	return params, nil
}

func (h *Handler) decodeParams(w http.ResponseWriter, r *http.Request) (product.CreateParams, bool) {
	var req productRequest
	if !respond.Decode(w, r, &req) {
		return product.CreateParams{}, false
	}

	params, err := req.toParams()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid unit_price")
		return params, false
	}

	return params, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	archived, _ := strconv.ParseBool(q.Get("include_archived"))

	products, info, err := h.svc.List(r.Context(), product.ListFilter{
		Page:            respond.PageRequest(r),
		Search:          q.Get("search"),
		IncludeArchived: archived,
	})
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPaged(ToResponseList(products), info))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.FromError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Archive(r.Context(), id); err != nil {
		respond.FromError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Restore(r.Context(), id); err != nil {
		respond.FromError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
