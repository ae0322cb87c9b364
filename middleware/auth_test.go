package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Maharshi2203/Sattys-main/middleware"
	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	tokens, err := services.NewTokenService("middleware-test-secret", 0)
	require.NoError(t, err)
	token, err := tokens.Generate(&models.AdminUser{ID: 3, Username: "owner", Role: "admin"})
	require.NoError(t, err)

	r := gin.New()
	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuth(tokens), middleware.AdminOnly())
	admin.GET("/me", func(c *gin.Context) {
		claims, err := middleware.GetAdminClaims(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r, token
}

func TestAdminAuth_Cookie(t *testing.T) {
	r, token := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"owner"}`, w.Body.String())
}

func TestAdminAuth_BearerHeader(t *testing.T) {
	r, token := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_Rejects(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name   string
		header string
		cookie string
	}{
		{"no credentials", "", ""},
		{"bad bearer", "Bearer nope", ""},
		{"basic scheme", "Basic b3duZXI6cHc=", ""},
		{"bad cookie", "", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdminOnly_RequiresAdminRole(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "editor")
		c.Next()
	})
	r.GET("/x", middleware.AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
