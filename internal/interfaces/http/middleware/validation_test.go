package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type registerPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func validationEngine() *gin.Engine {
	SetupValidator()

	engine := gin.New()
	engine.POST("/register", func(c *gin.Context) {
		var payload registerPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func TestHandleValidationError_ReportsJSONFieldNames(t *testing.T) {
	engine := validationEngine()

	req := httptest.NewRequest("POST", "/register",
		strings.NewReader(`{"email":"not-an-email","password":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "VALIDATION_ERROR")
	assert.Contains(t, body, `"email"`)
	assert.Contains(t, body, "Invalid email format")
	assert.Contains(t, body, `"password"`)
	assert.Contains(t, body, "Must be at least 8 characters")
}

func TestHandleValidationError_MissingRequiredField(t *testing.T) {
	engine := validationEngine()

	req := httptest.NewRequest("POST", "/register",
		strings.NewReader(`{"password":"long-enough-password"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required")
}

func TestValidation_ValidPayloadPasses(t *testing.T) {
	engine := validationEngine()

	req := httptest.NewRequest("POST", "/register",
		strings.NewReader(`{"email":"donor@example.com","password":"long-enough-password"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
