package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(discardLogger()))
	api := r.Group("/api", AuthMiddleware(testSecret, "fx-test"))
	api.GET("/me", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		ctxUser, _ := GetUserIDFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": userID, "ctxUser": ctxUser, "role": GetRoleFromContext(c)})
	})
	api.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := newAuthRouter()
	token, err := IssueToken(testSecret, "fx-test", "user-1", "", time.Hour)
	require.NoError(t, err)

	w := do(r, "/api/me", token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["user"])
	assert.Equal(t, "user-1", body["ctxUser"])
	assert.Equal(t, RoleUser, body["role"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := newAuthRouter()
	expired, err := IssueToken(testSecret, "fx-test", "user-1", RoleUser, -time.Minute)
	require.NoError(t, err)
	wrongIssuer, err := IssueToken(testSecret, "someone-else", "user-1", RoleUser, time.Hour)
	require.NoError(t, err)
	wrongKey, err := IssueToken("other-secret", "fx-test", "user-1", RoleUser, time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":     "",
		"expired":     expired,
		"issuer":      wrongIssuer,
		"signature":   wrongKey,
		"not-a-token": "abc.def",
	} {
		t.Run(name, func(t *testing.T) {
			w := do(r, "/api/me", token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"kind":"AuthenticationRequired"`)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newAuthRouter()
	userToken, _ := IssueToken(testSecret, "fx-test", "user-1", RoleUser, time.Hour)
	adminToken, _ := IssueToken(testSecret, "fx-test", "admin-1", RoleAdmin, time.Hour)

	w := do(r, "/api/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"Forbidden"`)

	w = do(r, "/api/admin", adminToken)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouteEventName(t *testing.T) {
	assert.Equal(t, "api_v1_exchange-rates_from_to", routeEventName("/api/v1/exchange-rates/:from/:to"))
	assert.Equal(t, "", routeEventName(""))
}
