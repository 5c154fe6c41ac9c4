package servicetype_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httpservicetype "github.com/MrJamesThe3rd/copycorner/internal/http/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
)

type fixture struct {
	repo     *servicetype.MockRepository
	products *servicetype.MockProductLister
	router   chi.Router
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     servicetype.NewMockRepository(ctrl),
		products: servicetype.NewMockProductLister(ctrl),
	}

	f.router = chi.NewRouter()
	f.router.Route("/service-types", httpservicetype.NewHandler(servicetype.NewService(f.repo, f.products, servicetype.NewMockCategoryResolver(ctrl))).Routes)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Archive(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		inUse      int
		wantStatus int
	}{
		{name: "Unused", inUse: 0, wantStatus: http.StatusNoContent},
		{name: "InUse", inUse: 2, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id, Name: "Photocopying"}, nil)
			f.repo.EXPECT().CountActiveTransactions(gomock.Any(), "Photocopying").Return(tt.inUse, nil)

			if tt.inUse == 0 {
				f.repo.EXPECT().SetArchived(gomock.Any(), id, true).Return(nil)
			}

			rec := f.do(http.MethodPost, "/service-types/"+id.String()+"/archive", "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_RestoreNotArchived(t *testing.T) {
	id := uuid.New()
	f := newFixture(t)
	f.repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id, Name: "Layout"}, nil)

	rec := f.do(http.MethodPost, "/service-types/"+id.String()+"/restore", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_CreateInvalid(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/service-types/", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Products(t *testing.T) {
	id := uuid.New()
	f := newFixture(t)
	f.repo.EXPECT().GetServiceType(gomock.Any(), id).
		Return(&servicetype.ServiceType{ID: id, Name: "Photocopying", CategoryName: "Paper"}, nil)
	f.products.EXPECT().ListByCategory(gomock.Any(), "Paper").
		Return([]*product.Product{{ID: uuid.New(), Name: "A4 Bond", CategoryName: "Paper"}}, nil)

	rec := f.do(http.MethodGet, "/service-types/"+id.String()+"/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "A4 Bond", env.Data[0].Name)
}

func TestHandler_ListActive(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().ListSelectable(gomock.Any()).Return([]*servicetype.ServiceType{
		{Name: "Photocopying", Status: servicetype.StatusActive},
		{Name: "Lamination", Status: servicetype.StatusInactive},
	}, nil)

	rec := f.do(http.MethodGet, "/service-types/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Photocopying")
	assert.NotContains(t, rec.Body.String(), "Lamination")
}
