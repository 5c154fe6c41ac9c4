package transaction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httptx "github.com/MrJamesThe3rd/copycorner/internal/http/transaction"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

type fixture struct {
	repo   *transaction.MockRepository
	types  *transaction.MockServiceTypeCatalog
	router chi.Router
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:  transaction.NewMockRepository(ctrl),
		types: transaction.NewMockServiceTypeCatalog(ctrl),
	}

	svc := transaction.NewService(f.repo, transaction.NewMockProductCatalog(ctrl), f.types,
		transaction.WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }),
	)

	f.router = chi.NewRouter()
	f.router.Route("/transactions", httptx.NewHandler(svc).Routes)

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field string `json:"field"`
		Code  string `json:"code"`
	} `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func layoutOnly() []*servicetype.ServiceType {
	return []*servicetype.ServiceType{{Name: "Layout", Status: servicetype.StatusActive}}
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(f *fixture)
		wantStatus int
		wantCodes  []string
	}{
		{
			name: "NumbersAsStrings",
			body: `{"customer_name":"Maria Santos","service_type":"Layout","price_per_unit":"15.50","quantity":"2"}`,
			setupMock: func(f *fixture) {
				f.types.EXPECT().ListActive(gomock.Any()).Return(layoutOnly(), nil)
				f.repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, "31.00", tx.TotalAmount.StringFixed(2))
						tx.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "NumbersAsNumbers",
			body: `{"customer_name":"Maria Santos","service_type":"Layout","price_per_unit":15.5,"quantity":2}`,
			setupMock: func(f *fixture) {
				f.types.EXPECT().ListActive(gomock.Any()).Return(layoutOnly(), nil)
				f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "ValidationFailure",
			body: `{"customer_name":"12","service_type":"Layout","price_per_unit":"0","quantity":"1"}`,
			setupMock: func(f *fixture) {
				f.types.EXPECT().ListActive(gomock.Any()).Return(layoutOnly(), nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCodes:  []string{"NumericOnly", "NotPositive"},
		},
		{
			name:       "MalformedBody",
			body:       `{"customer_name":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			rec := f.do(http.MethodPost, "/transactions/", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			env := decode(t, rec)

			var codes []string
			for _, fe := range env.Errors {
				codes = append(codes, fe.Code)
			}

			assert.ElementsMatch(t, tt.wantCodes, codes)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&transaction.Transaction{
			ID:            id,
			TransactionID: "T-007",
			QueueNumber:   "007",
			Product:       transaction.ProductLabel{Category: transaction.KindPaper, Label: "A4 Bond"},
			PricePerUnit:  decimal.NewFromInt(2),
			Quantity:      3,
			TotalAmount:   decimal.NewFromInt(6),
			Status:        transaction.StatusPending,
			Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		}, nil)

		rec := f.do(http.MethodGet, "/transactions/"+id.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
		assert.Equal(t, "T-007", got["transaction_id"])
		assert.Equal(t, "2026-03-14", got["date"])
		assert.Equal(t, "6.00", got["total_amount"])
		assert.Equal(t, "paper_type", got["product_field"])
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)

		rec := f.do(http.MethodGet, "/transactions/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/transactions/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Transitions(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		path       string
		current    transaction.Status
		archived   bool
		wantStatus int
	}{
		{name: "CancelPending", path: "cancel", current: transaction.StatusPending, wantStatus: http.StatusOK},
		{name: "CancelCompleted", path: "cancel", current: transaction.StatusCompleted, wantStatus: http.StatusConflict},
		{name: "CompleteCancelled", path: "complete", current: transaction.StatusCancelled, wantStatus: http.StatusConflict},
		{name: "RestoreCancelled", path: "restore", current: transaction.StatusCancelled, wantStatus: http.StatusOK},
		{name: "ArchiveCompleted", path: "archive", current: transaction.StatusCompleted, wantStatus: http.StatusOK},
		{name: "ArchivePending", path: "archive", current: transaction.StatusPending, wantStatus: http.StatusConflict},
		{name: "Unarchive", path: "unarchive", current: transaction.StatusCompleted, archived: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().GetTransaction(gomock.Any(), id).
				Return(&transaction.Transaction{ID: id, Status: tt.current, Archived: tt.archived}, nil)

			if tt.wantStatus == http.StatusOK {
				f.repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec := f.do(http.MethodPost, "/transactions/"+id.String()+"/"+tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	f := newFixture(t)
	f.repo.EXPECT().GetTransaction(gomock.Any(), id).
		Return(&transaction.Transaction{ID: id, Status: transaction.StatusCancelled}, nil)
	f.repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(nil)

	rec := f.do(http.MethodDelete, "/transactions/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_List(t *testing.T) {
	t.Run("StatusFilter", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, page.Info, error) {
				require.NotNil(t, filter.Status)
				assert.Equal(t, transaction.StatusPending, *filter.Status)
				assert.Equal(t, page.Request{Page: 2, PerPage: 5}, filter.Page)
				assert.Equal(t, "maria", filter.Search)
				assert.False(t, filter.Archived)

				return nil, page.Info{Page: 2, PerPage: 5}, nil
			})

		rec := f.do(http.MethodGet, "/transactions/?status=Pending&page=2&per_page=5&search=maria", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Items      []any     `json:"items"`
			Pagination page.Info `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
		assert.NotNil(t, got.Items)
		assert.Equal(t, 2, got.Pagination.Page)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/transactions/?status=Lost", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_CheckStock(t *testing.T) {
	f := newFixture(t)
	f.types.EXPECT().ListActive(gomock.Any()).Return(layoutOnly(), nil)

	rec := f.do(http.MethodPost, "/transactions/stock-check", `{"service_type":"Layout","quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, true, got["ok"])
}
