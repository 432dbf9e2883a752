package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ap-collections/backoffice/internal/app"
	"github.com/ap-collections/backoffice/internal/auth"
	"github.com/ap-collections/backoffice/internal/customers"
	"github.com/ap-collections/backoffice/internal/delivery"
	"github.com/ap-collections/backoffice/internal/expenses"
	"github.com/ap-collections/backoffice/internal/geo"
	"github.com/ap-collections/backoffice/internal/masterdata/expensetypes"
	"github.com/ap-collections/backoffice/internal/masterdata/paymenttypes"
	"github.com/ap-collections/backoffice/internal/masterdata/stockcategories"
	"github.com/ap-collections/backoffice/internal/orders"
	"github.com/ap-collections/backoffice/internal/platform/cache"
	"github.com/ap-collections/backoffice/internal/platform/db"
	"github.com/ap-collections/backoffice/internal/rbac"
	"github.com/ap-collections/backoffice/internal/reports"
	"github.com/ap-collections/backoffice/internal/shared"
	"github.com/ap-collections/backoffice/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.Connect(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "backoffice_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	rbacMiddleware := rbac.Middleware{Logger: logger}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	customerRepo := customers.NewRepository(dbpool)
	customerService := customers.NewService(customerRepo)
	customersHandler := customers.NewHandler(logger, customerService, rbacMiddleware)

	paymentTypesHandler := paymenttypes.NewHandler(logger,
		paymenttypes.NewService(paymenttypes.NewRepository(dbpool)), rbacMiddleware)
	stockCategoriesHandler := stockcategories.NewHandler(logger,
		stockcategories.NewService(stockcategories.NewRepository(dbpool)), rbacMiddleware)
	expenseTypesHandler := expensetypes.NewHandler(logger,
		expensetypes.NewService(expensetypes.NewRepository(dbpool)), rbacMiddleware)

	orderRepo := orders.NewRepository(dbpool)
	orderService := orders.NewService(orderRepo, customerRepo)
	ordersHandler := orders.NewHandler(logger, orderService, rbacMiddleware)

	deliveryRepo := delivery.NewRepository(dbpool)
	deliveryService := delivery.NewService(deliveryRepo)
	deliveryHandler := delivery.NewHandler(logger, deliveryService, rbacMiddleware)

	expenseRepo := expenses.NewRepository(dbpool)
	expenseService := expenses.NewService(expenseRepo)
	expensesHandler := expenses.NewHandler(logger, expenseService, rbacMiddleware)

	reportRepo := reports.NewRepository(dbpool)
	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(reportRepo, reportCache)
	reportsHandler := reports.NewHandler(logger, reportService, rbacMiddleware)

	geoIndex, err := geo.Load()
	if err != nil {
		logger.Error("load geo dataset", slog.Any("error", err))
		os.Exit(1)
	}
	geoHandler := geo.NewHandler(geoIndex)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:                 logger,
		Config:                 cfg,
		SessionManager:         sessionManager,
		CSRFManager:            csrfManager,
		AuthHandler:            authHandler,
		CustomersHandler:       customersHandler,
		PaymentTypesHandler:    paymentTypesHandler,
		StockCategoriesHandler: stockCategoriesHandler,
		ExpenseTypesHandler:    expenseTypesHandler,
		OrdersHandler:          ordersHandler,
		DeliveryHandler:        deliveryHandler,
		ExpensesHandler:        expensesHandler,
		ReportsHandler:         reportsHandler,
		GeoHandler:             geoHandler,
		JobHandler:             jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
