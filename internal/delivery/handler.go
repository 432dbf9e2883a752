package delivery

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ap-collections/backoffice/internal/platform/httpx"
	"github.com/ap-collections/backoffice/internal/rbac"
	"github.com/ap-collections/backoffice/internal/shared"
)

// Handler exposes delivery endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes attaches delivery routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.RequirePage(shared.PageDelivery)).Get("/", h.List)
	r.With(h.rbac.RequirePage(shared.PageDelivery)).Get("/overdue", h.Overdue)
	r.With(h.rbac.RequireAction(shared.PageDelivery, "deliver")).Post("/{id}/delivered", h.MarkDelivered)
}

// List accepts ?state=undelivered|delivered, ?order_from/?order_to (order
// date range), ?from/?to (delivery date range, YYYY-MM-DD), ?due_by
// (inclusive), and ?q for substring search.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		State:  State(r.URL.Query().Get("state")),
		Search: r.URL.Query().Get("q"),
	}
	for param, dst := range map[string]**time.Time{
		"order_from": &f.OrderDateFrom,
		"order_to":   &f.OrderDateTo,
		"from":       &f.DateFrom,
		"to":         &f.DateTo,
		"due_by":     &f.DueBy,
	} {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		*dst = &d
	}

	result, err := h.service.List(r.Context(), f)
	if err != nil {
		h.logger.Error("list deliveries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deliveries": result})
}

func (h *Handler) Overdue(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Overdue(r.Context())
	if err != nil {
		h.logger.Error("list overdue deliveries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deliveries": result})
}

func (h *Handler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.service.MarkDelivered(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		h.logger.Error("mark delivered", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "delivered"})
}
