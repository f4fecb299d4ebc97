package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/daana/backend/internal/infrastructure/auth"
)

func withClaims(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		setClaims(c, claims)
		c.Next()
	}
}

func roleEngine(pre gin.HandlerFunc, guard gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	handlers := []gin.HandlerFunc{}
	if pre != nil {
		handlers = append(handlers, pre)
	}
	handlers = append(handlers, guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/guarded", handlers...)
	return engine
}

func getGuarded(engine *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/guarded", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireRole_Allowed(t *testing.T) {
	engine := roleEngine(
		withClaims(&auth.Claims{Email: "admin@example.com", Role: "ADMIN"}),
		RequireRole("ADMIN", "MONITOR"),
	)

	w := getGuarded(engine)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	engine := roleEngine(
		withClaims(&auth.Claims{Email: "donor@example.com", Role: "DONOR"}),
		RequireRole("ADMIN"),
	)

	w := getGuarded(engine)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireRole_NoClaims(t *testing.T) {
	engine := roleEngine(nil, RequireRole("ADMIN"))

	w := getGuarded(engine)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestRequireScope_Granted(t *testing.T) {
	engine := roleEngine(
		withClaims(&auth.Claims{Email: "charity@example.com", Role: "CHARITY", Scope: "charity:read charity:write"}),
		RequireScope("charity:write"),
	)

	w := getGuarded(engine)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireScope_Missing(t *testing.T) {
	engine := roleEngine(
		withClaims(&auth.Claims{Email: "charity@example.com", Role: "CHARITY", Scope: "charity:read"}),
		RequireScope("charity:write"),
	)

	w := getGuarded(engine)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireScope_NoClaims(t *testing.T) {
	engine := roleEngine(nil, RequireScope("charity:write"))

	w := getGuarded(engine)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
