package auth

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ap-collections/backoffice/internal/platform/httpx"
	"github.com/ap-collections/backoffice/internal/shared"
)

// Handler exposes login/logout endpoints.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	csrf           *shared.CSRFManager
}

// NewHandler constructs an auth Handler.
func NewHandler(logger *slog.Logger, service *Service, sm *shared.SessionManager, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, sessionManager: sm, csrf: csrf}
}

// MountRoutes attaches auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
	r.Get("/csrf", h.CSRFToken)
}

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserName    string               `json:"user_name"`
	RoleName    string               `json:"role_name"`
	Permissions shared.PermissionMap `json:"permissions"`
	CSRFToken   string               `json:"csrf_token"`
}

// Login authenticates the user and stores the login snapshot in the session.
// The permission map is read once here and not re-validated until logout.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if req.UserName == "" || req.Password == "" {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.logger.Warn("login failed", slog.String("user_name", req.UserName))
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	sess.SetLogin(strconv.FormatInt(user.ID, 10), user.UserName, user.RoleName, user.Permissions)
	token, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Error("issue csrf token", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		UserName:    user.UserName,
		RoleName:    user.RoleName,
		Permissions: user.Permissions,
		CSRFToken:   token,
	})
}

// Logout destroys the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	h.sessionManager.Destroy(sess)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the current session snapshot.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{
		UserName:    sess.UserName(),
		RoleName:    sess.RoleName(),
		Permissions: sess.Permissions(),
	})
}

// CSRFToken issues the token for the current (possibly anonymous) session so
// the login form can submit it.
func (h *Handler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	token, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"csrf_token": token})
}
