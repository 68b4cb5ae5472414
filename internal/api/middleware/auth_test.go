// internal/api/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prestige-motors-api-server/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newGatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(Authenticate(testSecret))
	admin.Use(RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	w := doRequest(newGatedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadFormat(t *testing.T) {
	w := doRequest(newGatedRouter(), "not-a-bearer-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	w := doRequest(newGatedRouter(), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	token, err := auth.GenerateJWT(testSecret, "visitor", false, time.Hour)
	require.NoError(t, err)

	w := doRequest(newGatedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	token, err := auth.GenerateJWT(testSecret, "admin", true, time.Hour)
	require.NoError(t, err)

	w := doRequest(newGatedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
