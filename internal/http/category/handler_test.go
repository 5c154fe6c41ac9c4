package category_test

import (
	"context"
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

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	httpcategory "github.com/MrJamesThe3rd/copycorner/internal/http/category"
	httpservicetype "github.com/MrJamesThe3rd/copycorner/internal/http/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
)

type fixture struct {
	repo         *category.MockRepository
	serviceTypes *servicetype.MockRepository
	router       chi.Router
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:         category.NewMockRepository(ctrl),
		serviceTypes: servicetype.NewMockRepository(ctrl),
	}

	categories := category.NewService(f.repo)
	types := servicetype.NewService(f.serviceTypes, nil, categories)

	f.router = chi.NewRouter()
	f.router.Route("/categories", httpcategory.NewHandler(categories, types).Routes)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *category.MockRepository)
		wantStatus int
	}{
		{
			name: "Success",
			body: `{"name":"Ink","description":"Printer ink"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().FindCategoryByName(gomock.Any(), "Ink").Return(nil, category.ErrNotFound)
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						c.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "EmptyName",
			body:       `{"name":" "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate",
			body: `{"name":"PAPER"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().FindCategoryByName(gomock.Any(), "PAPER").Return(&category.Category{ID: uuid.New(), Name: "Paper"}, nil)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f.repo)
			}

			rec := f.do(http.MethodPost, "/categories/", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		usage      int
		wantStatus int
	}{
		{name: "Unused", usage: 0, wantStatus: http.StatusNoContent},
		{name: "InUse", usage: 4, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, Name: "Paper"}, nil)
			f.repo.EXPECT().CountUsage(gomock.Any(), "Paper").Return(tt.usage, nil)

			if tt.usage == 0 {
				f.repo.EXPECT().DeleteCategory(gomock.Any(), id).Return(nil)
			}

			rec := f.do(http.MethodDelete, "/categories/"+id.String(), "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_GetNotFound(t *testing.T) {
	id := uuid.New()
	f := newFixture(t)

	f.repo.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)

	rec := f.do(http.MethodGet, "/categories/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ServiceTypes(t *testing.T) {
	id := uuid.New()
	f := newFixture(t)

	f.repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, Name: "T-shirt"}, nil)
	f.serviceTypes.EXPECT().ListSelectable(gomock.Any()).Return([]*servicetype.ServiceType{
		{Name: "Photocopying", CategoryName: "Paper", Status: servicetype.StatusActive},
		{Name: "Shirt Printing", CategoryName: "T-shirt", Status: servicetype.StatusActive},
	}, nil)

	rec := f.do(http.MethodGet, "/categories/"+id.String()+"/service-types", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data []httpservicetype.Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Shirt Printing", env.Data[0].Name)
}
