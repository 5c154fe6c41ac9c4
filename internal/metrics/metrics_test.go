package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/copycorner/internal/metrics"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

func TestMetrics_RecordTransition(t *testing.T) {
	m := metrics.New()

	m.RecordTransition(transaction.ActionComplete, transaction.ResultOK)
	m.RecordTransition(transaction.ActionComplete, transaction.ResultOK)
	m.RecordTransition(transaction.ActionArchive, transaction.ResultRejected)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `copycorner_transaction_transitions_total{action="complete",result="ok"} 2`)
	assert.Contains(t, body, `copycorner_transaction_transitions_total{action="archive",result="rejected"} 1`)
}

func TestMetrics_Middleware(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(),
		`copycorner_http_request_duration_seconds_count{code="418",method="GET",route="/items/{id}"} 1`))
}
