package category

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	"github.com/MrJamesThe3rd/copycorner/internal/http/respond"
	httpservicetype "github.com/MrJamesThe3rd/copycorner/internal/http/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
)

type Handler struct {
	categories   *category.Service
	serviceTypes *servicetype.Service
}

func NewHandler(categories *category.Service, serviceTypes *servicetype.Service) *Handler {
	return &Handler{categories: categories, serviceTypes: serviceTypes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/all", h.listAll)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/service-types", h.serviceTypesOf)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Response struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toResponse(c *category.Category) Response {
	return Response{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponseList(categories []*category.Category) []Response {
	resp := make([]Response, len(categories))
	for i, c := range categories {
		resp[i] = toResponse(c)
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.categories.Create(r.Context(), category.Params{Name: req.Name, Description: req.Description})
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.categories.Update(r.Context(), id, category.Params{Name: req.Name, Description: req.Description})
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, info, err := h.categories.List(r.Context(), respond.PageRequest(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.NewPaged(toResponseList(categories), info))
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListAll(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(categories))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	c, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		respond.FromError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// serviceTypesOf lists the active service types filed under the category.
func (h *Handler) serviceTypesOf(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	c, err := h.categories.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	types, err := h.serviceTypes.ListActiveByCategory(r.Context(), c.Name)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, httpservicetype.ToResponseList(types))
}
