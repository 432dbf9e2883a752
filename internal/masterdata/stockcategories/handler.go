package stockcategories

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mdshared "github.com/ap-collections/backoffice/internal/masterdata/shared"
	"github.com/ap-collections/backoffice/internal/platform/httpx"
	"github.com/ap-collections/backoffice/internal/rbac"
	"github.com/ap-collections/backoffice/internal/shared"
)

// Handler exposes the stock-category admin endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes attaches stock-category routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.RequirePage(shared.PageStockCategory)).Get("/", h.List)
	r.With(h.rbac.RequireAction(shared.PageStockCategory, "new")).Post("/", h.Create)
	r.With(h.rbac.RequireAction(shared.PageStockCategory, "edit")).Put("/{id}", h.Update)
	r.With(h.rbac.RequireAction(shared.PageStockCategory, "delete")).Delete("/{id}", h.Delete)
}

type nameInput struct {
	Name string `json:"name"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("list stock categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"stock_categories": result})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input nameInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	id, err := h.service.Create(r.Context(), input.Name)
	if err != nil {
		httpx.RespondError(w, mapError(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	var input nameInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.service.Update(r.Context(), id, input.Name); err != nil {
		httpx.RespondError(w, mapError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, mapError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, mdshared.ErrNotFound):
		return httpx.ErrNotFound
	case errors.Is(err, mdshared.ErrDuplicate):
		return httpx.ErrDuplicate
	case errors.Is(err, mdshared.ErrInUse):
		return httpx.ErrInUse
	case errors.Is(err, mdshared.ErrInvalid):
		return httpx.ErrValidation
	default:
		return err
	}
}
