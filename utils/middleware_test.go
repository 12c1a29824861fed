package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func requestWithToken(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := protectedRouter("staff")

	w := requestWithToken(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := protectedRouter("staff")

	w := requestWithToken(t, r, "bogus.token.value")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name      string
		role      string
		validated bool
		allowed   []string
		wantCode  int
	}{
		{"validated staff passes", "staff", true, []string{"staff", "super_admin"}, http.StatusOK},
		{"unvalidated staff blocked", "staff", false, []string{"staff", "super_admin"}, http.StatusForbidden},
		{"customer blocked from staff routes", "customer", true, []string{"staff", "super_admin"}, http.StatusForbidden},
		{"customer passes customer routes without validation gate", "customer", false, []string{"customer"}, http.StatusOK},
		{"super admin passes", "super_admin", true, []string{"super_admin"}, http.StatusOK},
		{"staff blocked from admin routes", "staff", true, []string{"super_admin"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken("user-1", "someone@surfshop.fr", tt.role, tt.validated)
			require.NoError(t, err)

			r := protectedRouter(tt.allowed...)
			w := requestWithToken(t, r, token)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
