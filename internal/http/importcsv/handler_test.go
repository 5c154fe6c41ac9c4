package importcsv_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/copycorner/internal/http/importcsv"
	"github.com/MrJamesThe3rd/copycorner/internal/importer"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

func upload(t *testing.T, catalog importer.Catalog, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	if csv != "" {
		fw, err := mw.CreateFormFile("file", "products.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(csv))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := chi.NewRouter()
	r.Route("/products/import", importcsv.NewHandler(importer.NewService(catalog)).Routes)

	req := httptest.NewRequest(http.MethodPost, "/products/import/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Import(t *testing.T) {
	tests := []struct {
		name       string
		csv        string
		setupMock  func(m *importer.MockCatalog)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Imported",
			csv:  "name,category,stock,price\nA4 Bond,Paper,100,1.50\n",
			setupMock: func(m *importer.MockCatalog) {
				m.EXPECT().
					ImportBatch(gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, params []product.CreateParams) (*product.ImportResult, error) {
						return &product.ImportResult{Imported: []*product.Product{{ID: uuid.New(), Name: params[0].Name}}}, nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"imported":1`,
		},
		{
			name: "Conflict",
			csv:  "name,category,stock\nA4 Bond,Paper,100\n",
			setupMock: func(m *importer.MockCatalog) {
				m.EXPECT().ImportBatch(gomock.Any(), gomock.Any()).Return(&product.ImportResult{
					Conflicts: []product.Conflict{{
						Incoming: product.CreateParams{Name: "A4 Bond"},
						Existing: &product.Product{ID: uuid.New(), Name: "a4 bond"},
					}},
				}, nil)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"conflicts"`,
		},
		{
			name:       "NoHeader",
			csv:        "foo,bar\n1,2\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadRow",
			csv:        "name,category,stock\nA4 Bond,Paper,many\n",
			wantStatus: http.StatusBadRequest,
			wantBody:   "line 2",
		},
		{
			name:       "MissingFile",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			catalog := importer.NewMockCatalog(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(catalog)
			}

			rec := upload(t, catalog, tt.csv)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
