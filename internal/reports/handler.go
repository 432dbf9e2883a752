package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ap-collections/backoffice/internal/platform/httpx"
	"github.com/ap-collections/backoffice/internal/rbac"
	"github.com/ap-collections/backoffice/internal/shared"
)

// Handler exposes the reporting endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
	now     func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac, now: time.Now}
}

// MountRoutes attaches report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.RequirePage(shared.PageDailyDashboard)).Get("/daily", h.Daily)
	r.With(h.rbac.RequirePage(shared.PageMonthlyReport)).Get("/monthly", h.Monthly)
	r.With(h.rbac.RequirePage(shared.PageIncomeStatement)).Get("/income-statement", h.IncomeStatement)
}

// Daily serves the dashboard for ?date=YYYY-MM-DD, defaulting to today.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	date := h.now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		date = parsed
	}
	result, err := h.service.Daily(r.Context(), date)
	if err != nil {
		h.logger.Error("daily dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// Monthly serves the report for ?year=&month=, defaulting to the current
// month.
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		year = v
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		month = time.Month(v)
	}
	result, err := h.service.Monthly(r.Context(), year, month)
	if err != nil {
		h.logger.Error("monthly report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// IncomeStatement serves the yearly view for ?year=, defaulting to the
// current year.
func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		year = v
	}
	result, err := h.service.IncomeStatement(r.Context(), year)
	if err != nil {
		h.logger.Error("income statement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
