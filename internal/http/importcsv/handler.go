package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpproduct "github.com/MrJamesThe3rd/copycorner/internal/http/product"
	"github.com/MrJamesThe3rd/copycorner/internal/http/respond"
	"github.com/MrJamesThe3rd/copycorner/internal/importer"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type paramsDTO struct {
	Name          string `json:"name"`
	CategoryName  string `json:"category_name"`
	StockQuantity int    `json:"stock_quantity"`
	MinimumStock  *int   `json:"minimum_stock,omitempty"`
	UnitPrice     string `json:"unit_price"`
}

type conflictDTO struct {
	Incoming paramsDTO            `json:"incoming"`
	Existing httpproduct.Response `json:"existing"`
}

type importSuccessResponse struct {
	Imported int                    `json:"imported"`
	Products []httpproduct.Response `json:"products"`
}

type importConflictResponse struct {
	Status    string        `json:"status"`
	Message   string        `json:"message"`
	Conflicts []conflictDTO `json:"conflicts"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			Status:    "error",
			Message:   "some products already exist, nothing was imported",
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: httpproduct.ToResponse(c.Existing),
			})
		}

		respond.Raw(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported: len(result.Imported),
		Products: httpproduct.ToResponseList(result.Imported),
	})
}

func toParamsDTO(p product.CreateParams) paramsDTO {
	return paramsDTO{
		Name:          p.Name,
		CategoryName:  p.CategoryName,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		UnitPrice:     p.UnitPrice.StringFixed(2),
	}
}
