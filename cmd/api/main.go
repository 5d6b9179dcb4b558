package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/seyram-dev/pos-backoffice/internal/config"
	"github.com/seyram-dev/pos-backoffice/internal/handler"
	"github.com/seyram-dev/pos-backoffice/internal/logging"
	"github.com/seyram-dev/pos-backoffice/internal/middleware"
	"github.com/seyram-dev/pos-backoffice/internal/reconcile"
	"github.com/seyram-dev/pos-backoffice/internal/repository"
	"github.com/seyram-dev/pos-backoffice/internal/service/receipts"
	"github.com/seyram-dev/pos-backoffice/internal/stock"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("pos-backoffice", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	invoiceRepo := repository.NewInvoiceRepository(db)
	historyRepo := repository.NewPaymentHistoryRepository(db)
	receiptRepo := repository.NewReceiptEventRepository(db)
	stockRepo := repository.NewStockRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)

	reconcileSvc := reconcile.NewService(invoiceRepo, historyRepo, receiptRepo, db)
	stockSvc := stock.NewService(stockRepo)

	dispatcher := receipts.NewDispatcher(
		receiptRepo,
		cfg.ReceiptRendererURL,
		logger,
		time.Duration(cfg.ReceiptDispatchIntervalS)*time.Second,
	)
	go dispatcher.Start(ctx)

	authHandler := handler.NewAuthHandler(operatorRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpiryH)*time.Hour)
	invoiceHandler := handler.NewInvoiceHandler(reconcileSvc)
	paymentHandler := handler.NewPaymentHandler(reconcileSvc)
	stockHandler := handler.NewStockHandler(stockSvc)
	healthHandler := handler.NewHealthHandler(db)

	authn := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	mux.Handle("GET /api/v1/invoices", authn(http.HandlerFunc(invoiceHandler.List)))
	mux.Handle("GET /api/v1/invoices/{id}", authn(http.HandlerFunc(invoiceHandler.Get)))
	mux.Handle("POST /api/v1/invoices/{id}/payments", authn(http.HandlerFunc(paymentHandler.Apply)))
	mux.Handle("DELETE /api/v1/payments/{entryID}", authn(http.HandlerFunc(paymentHandler.Delete)))
	mux.Handle("GET /api/v1/products/{id}/stock-timeline", authn(http.HandlerFunc(stockHandler.Timeline)))

	var root http.Handler = mux
	root = middleware.Logging(root)
	root = middleware.Recovery(root)
	root = middleware.Tracing(root)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
