// Package rbac enforces the per-page permission snapshot stored in the
// session at login. No database lookup happens per request; permissions go
// stale until the user logs out again.
package rbac

import (
	"log/slog"
	"net/http"

	"github.com/ap-collections/backoffice/internal/shared"
)

// Middleware wires page/action authorization helpers for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// RequirePage ensures the current user can see the given page at all.
func (m Middleware) RequirePage(page string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			perms, ok := m.currentPermissions(r)
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if !perms.CanView(page) {
				m.deny(w, r, page, "view")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAction ensures the current user holds a specific action grant on a page.
func (m Middleware) RequireAction(page, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			perms, ok := m.currentPermissions(r)
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if !perms.Allows(page, action) {
				m.deny(w, r, page, action)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) currentPermissions(r *http.Request) (shared.PermissionMap, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		return nil, false
	}
	return sess.Permissions(), true
}

func (m Middleware) deny(w http.ResponseWriter, r *http.Request, page, action string) {
	if m.Logger != nil {
		m.Logger.Warn("permission denied",
			slog.String("page", page),
			slog.String("action", action),
			slog.String("path", r.URL.Path))
	}
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
