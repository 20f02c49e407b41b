package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthIsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(nil)
	router := gin.New()
	router.GET("/api/health", h.Health)

	// Repeated calls never mutate state and always succeed.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "Server is running")
		assert.Contains(t, w.Body.String(), "timestamp")
	}
}
