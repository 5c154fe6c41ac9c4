package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	categoryStore "github.com/MrJamesThe3rd/copycorner/internal/category/store"
	"github.com/MrJamesThe3rd/copycorner/internal/config"
	"github.com/MrJamesThe3rd/copycorner/internal/database"
	apiHttp "github.com/MrJamesThe3rd/copycorner/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/copycorner/internal/http/category"
	importHandler "github.com/MrJamesThe3rd/copycorner/internal/http/importcsv"
	productHandler "github.com/MrJamesThe3rd/copycorner/internal/http/product"
	reportHandler "github.com/MrJamesThe3rd/copycorner/internal/http/report"
	serviceTypeHandler "github.com/MrJamesThe3rd/copycorner/internal/http/servicetype"
	txHandler "github.com/MrJamesThe3rd/copycorner/internal/http/transaction"
	"github.com/MrJamesThe3rd/copycorner/internal/importer"
	"github.com/MrJamesThe3rd/copycorner/internal/metrics"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	productStore "github.com/MrJamesThe3rd/copycorner/internal/product/store"
	"github.com/MrJamesThe3rd/copycorner/internal/report"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
	serviceTypeStore "github.com/MrJamesThe3rd/copycorner/internal/servicetype/store"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
	txStore "github.com/MrJamesThe3rd/copycorner/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	m := metrics.New()
	transactions := txStore.New(db)

	var (
		categoryService    = category.NewService(categoryStore.New(db))
		productService     = product.NewService(productStore.New(db), categoryService)
		serviceTypeService = servicetype.NewService(serviceTypeStore.New(db), productService, categoryService)
		transactionService = transaction.NewService(transactions, productService, serviceTypeService,
			transaction.WithRecorder(m))
		reportService = report.NewService(transactions, productService)
		importService = importer.NewService(productService)
	)

	router := apiHttp.New(cfg, m, db, apiHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService),
		Products:     productHandler.NewHandler(productService),
		ServiceTypes: serviceTypeHandler.NewHandler(serviceTypeService),
		Categories:   categoryHandler.NewHandler(categoryService, serviceTypeService),
		Reports:      reportHandler.NewHandler(reportService),
		Import:       importHandler.NewHandler(importService),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
