package geo

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ap-collections/backoffice/internal/platform/httpx"
)

// Handler serves the state/city lookup for address dropdowns.
type Handler struct {
	index *Index
}

// NewHandler constructs a Handler.
func NewHandler(index *Index) *Handler {
	return &Handler{index: index}
}

// MountRoutes attaches geo routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/states", h.States)
	r.Get("/states/{state}/cities", h.Cities)
}

func (h *Handler) States(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"states": h.index.States()})
}

func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	state, err := url.PathUnescape(chi.URLParam(r, "state"))
	if err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	cities, err := h.index.Cities(state)
	if err != nil {
		if errors.Is(err, ErrUnknownState) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cities": cities})
}
