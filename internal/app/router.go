package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ap-collections/backoffice/internal/auth"
	"github.com/ap-collections/backoffice/internal/customers"
	"github.com/ap-collections/backoffice/internal/delivery"
	"github.com/ap-collections/backoffice/internal/expenses"
	"github.com/ap-collections/backoffice/internal/geo"
	"github.com/ap-collections/backoffice/internal/masterdata/expensetypes"
	"github.com/ap-collections/backoffice/internal/masterdata/paymenttypes"
	"github.com/ap-collections/backoffice/internal/masterdata/stockcategories"
	"github.com/ap-collections/backoffice/internal/orders"
	"github.com/ap-collections/backoffice/internal/reports"
	"github.com/ap-collections/backoffice/internal/shared"
	"github.com/ap-collections/backoffice/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler            *auth.Handler
	CustomersHandler       *customers.Handler
	PaymentTypesHandler    *paymenttypes.Handler
	StockCategoriesHandler *stockcategories.Handler
	ExpenseTypesHandler    *expensetypes.Handler
	OrdersHandler          *orders.Handler
	DeliveryHandler        *delivery.Handler
	ExpensesHandler        *expenses.Handler
	ReportsHandler         *reports.Handler
	GeoHandler             *geo.Handler
	JobHandler             *jobs.Handler
}

// NewRouter constructs the chi.Router with the application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/customers", params.CustomersHandler.MountRoutes)
	r.Route("/payment-types", params.PaymentTypesHandler.MountRoutes)
	r.Route("/stock-categories", params.StockCategoriesHandler.MountRoutes)
	r.Route("/expense-types", params.ExpenseTypesHandler.MountRoutes)
	r.Route("/orders", params.OrdersHandler.MountRoutes)
	r.Route("/delivery", params.DeliveryHandler.MountRoutes)
	r.Route("/expenses", params.ExpensesHandler.MountRoutes)
	r.Route("/reports", params.ReportsHandler.MountRoutes)
	r.Route("/geo", params.GeoHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
