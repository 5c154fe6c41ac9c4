package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/MrJamesThe3rd/copycorner/internal/config"
	"github.com/MrJamesThe3rd/copycorner/internal/http/category"
	"github.com/MrJamesThe3rd/copycorner/internal/http/importcsv"
	"github.com/MrJamesThe3rd/copycorner/internal/http/product"
	"github.com/MrJamesThe3rd/copycorner/internal/http/report"
	"github.com/MrJamesThe3rd/copycorner/internal/http/respond"
	"github.com/MrJamesThe3rd/copycorner/internal/http/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/http/transaction"
	"github.com/MrJamesThe3rd/copycorner/internal/metrics"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Transactions *transaction.Handler
	Products     *product.Handler
	ServiceTypes *servicetype.Handler
	Categories   *category.Handler
	Reports      *report.Handler
	Import       *importcsv.Handler
}

func New(cfg *config.Config, m *metrics.Metrics, db Pinger, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(m.Middleware)

	router.Method(http.MethodGet, "/metrics", m.Handler())
	router.Get("/healthz", health(db))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.Server.RateLimit, time.Minute))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/products", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Products.Routes(r)
			})
		})

		r.Route("/service-types", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.ServiceTypes.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)
	})

	return router
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respond.Error(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}

		respond.JSON(w, http.StatusOK, map[string]string{"database": "ok"})
	}
}
