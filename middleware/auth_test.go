package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nahid-dev/local_business_directory/backend/controllers"
	"github.com/nahid-dev/local_business_directory/backend/models"
	"github.com/stretchr/testify/assert"
)

func requestWithRole(role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	if role == "" {
		return r
	}
	ctx := context.WithValue(r.Context(), controllers.RoleKey, role)
	return r.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	reached := false
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	t.Run("admin passes", func(t *testing.T) {
		reached = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(models.RoleAdmin))
		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain user denied", func(t *testing.T) {
		reached = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(models.RoleUser))
		assert.False(t, reached)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role denied", func(t *testing.T) {
		reached = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(""))
		assert.False(t, reached)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
