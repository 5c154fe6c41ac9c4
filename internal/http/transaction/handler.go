package transaction

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/http/respond"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/archived", h.listArchived)
	r.Post("/stock-check", h.checkStock)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/complete", h.step(h.svc.Complete))
	r.Post("/{id}/cancel", h.step(h.svc.Cancel))
	r.Post("/{id}/restore", h.step(h.svc.RestoreCancelled))
	r.Post("/{id}/archive", h.step(h.svc.Archive))
	r.Post("/{id}/unarchive", h.step(h.svc.RestoreArchived))
}

type draftRequest struct {
	CustomerName string               `json:"customer_name"`
	ServiceType  string               `json:"service_type"`
	ProductID    *uuid.UUID           `json:"product_id"`
	ProductName  string               `json:"product_name"`
	PaperType    string               `json:"paper_type"`
	SizeType     string               `json:"size_type"`
	SupplyType   string               `json:"supply_type"`
	TotalPages   respond.NumberString `json:"total_pages"`
	PricePerUnit respond.NumberString `json:"price_per_unit"`
	Quantity     respond.NumberString `json:"quantity"`
}

// toDraft accepts the per-category label fields older clients still send.
func (req draftRequest) toDraft() transaction.Draft {
	name := req.ProductName
	for _, alt := range []string{req.PaperType, req.SizeType, req.SupplyType} {
		if name == "" {
			name = alt
		}
	}

	return transaction.Draft{
		CustomerName: req.CustomerName,
		ServiceType:  req.ServiceType,
		ProductID:    req.ProductID,
		ProductName:  name,
		TotalPages:   req.TotalPages.String(),
		PricePerUnit: req.PricePerUnit.String(),
		Quantity:     req.Quantity.String(),
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.Create(r.Context(), req.toDraft())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req draftRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.Update(r.Context(), id, req.toDraft())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{
		Search: r.URL.Query().Get("search"),
		Page:   respond.PageRequest(r),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := transaction.Status(s)
		if !status.Valid() {
			respond.Error(w, http.StatusBadRequest, "unknown status "+s)
			return
		}

		filter.Status = &status
	}

	txs, info, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPaged(toResponseList(txs), info))
}

func (h *Handler) listArchived(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{
		Search: r.URL.Query().Get("search"),
		Page:   respond.PageRequest(r),
	}

	txs, info, err := h.svc.ListArchived(r.Context(), filter)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPaged(toResponseList(txs), info))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
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

// step adapts a lifecycle operation that takes only an id.
func (h *Handler) step(
	op func(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := respond.ID(w, r)
		if !ok {
			return
		}

		tx, err := op(r.Context(), id)
		if err != nil {
			respond.FromError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, toResponse(tx))
	}
}

type stockCheckResponse struct {
	OK        bool   `json:"ok"`
	Field     string `json:"field,omitempty"`
	Code      string `json:"code,omitempty"`
	Available int    `json:"available,omitempty"`
	Needed    int    `json:"needed,omitempty"`
}

func (h *Handler) checkStock(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	fe, err := h.svc.CheckStock(r.Context(), req.toDraft())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	resp := stockCheckResponse{OK: fe == nil}
	if fe != nil {
		resp.Field = fe.Field
		resp.Code = string(fe.Code)
		resp.Available = fe.Available
		resp.Needed = fe.Needed
	}

	respond.JSON(w, http.StatusOK, resp)
}
