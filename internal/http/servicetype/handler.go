package servicetype

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpproduct "github.com/MrJamesThe3rd/copycorner/internal/http/product"
	"github.com/MrJamesThe3rd/copycorner/internal/http/respond"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
)

type Handler struct {
	svc *servicetype.Service
}

func NewHandler(svc *servicetype.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/active", h.listActive)
	r.Get("/archived", h.listArchived)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/archive", h.archive)
	r.Post("/{id}/restore", h.restore)
	r.Get("/{id}/products", h.products)
}

type serviceTypeRequest struct {
	Name         string             `json:"name"`
	CategoryName string             `json:"category_name"`
	Status       servicetype.Status `json:"status"`
}

func (req serviceTypeRequest) toParams() servicetype.Params {
	return servicetype.Params{Name: req.Name, CategoryName: req.CategoryName, Status: req.Status}
}

type Response struct {
	ID           uuid.UUID          `json:"id"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	CategoryName string             `json:"category_name"`
	Status       servicetype.Status `json:"status"`
	Archived     bool               `json:"archived"`
	ArchivedAt   *time.Time         `json:"archived_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(st *servicetype.ServiceType) Response {
	return Response{
		ID:           st.ID,
		Code:         st.Code,
		Name:         st.Name,
		CategoryName: st.CategoryName,
		Status:       st.Status,
		Archived:     st.Archived,
		ArchivedAt:   st.ArchivedAt,
		CreatedAt:    st.CreatedAt,
		UpdatedAt:    st.UpdatedAt,
	}
}

func ToResponseList(types []*servicetype.ServiceType) []Response {
	resp := make([]Response, len(types))
	for i, st := range types {
		resp[i] = toResponse(st)
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req serviceTypeRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	st, err := h.svc.Create(r.Context(), req.toParams())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(st))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req serviceTypeRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	st, err := h.svc.Update(r.Context(), id, req.toParams())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	types, info, err := h.svc.List(r.Context(), respond.PageRequest(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPaged(ToResponseList(types), info))
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListActive(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(types))
}

func (h *Handler) listArchived(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListArchived(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(types))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	st, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
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

// products lists the active products of the service type's category.
func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	products, err := h.svc.Products(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, httpproduct.ToResponseList(products))
}
