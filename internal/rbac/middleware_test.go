package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ap-collections/backoffice/internal/shared"
)

func requestWithLogin(perms shared.PermissionMap) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	sess := &shared.Session{}
	sess.SetLogin("7", "thiri", "staff", perms)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequirePageAllowsVisiblePage(t *testing.T) {
	next, called := okHandler()
	handler := Middleware{}.RequirePage(shared.PageOrder)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithLogin(shared.PermissionMap{shared.PageOrder: {}}))

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePageHiddenPageForbidden(t *testing.T) {
	next, called := okHandler()
	handler := Middleware{}.RequirePage(shared.PageOrder)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithLogin(shared.PermissionMap{shared.PageCustomer: {}}))

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePageWithoutSessionUnauthorized(t *testing.T) {
	next, called := okHandler()
	handler := Middleware{}.RequirePage(shared.PageOrder)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireActionGrantsSpecificAction(t *testing.T) {
	next, called := okHandler()
	handler := Middleware{}.RequireAction(shared.PageOrder, "receipt")(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithLogin(shared.PermissionMap{shared.PageOrder: {Receipt: true}}))

	assert.True(t, *called)
}

func TestRequireActionVisibleButNotGranted(t *testing.T) {
	next, called := okHandler()
	handler := Middleware{}.RequireAction(shared.PageOrder, "delete")(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithLogin(shared.PermissionMap{shared.PageOrder: {New: true, Edit: true}}))

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
