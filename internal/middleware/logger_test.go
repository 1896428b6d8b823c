package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/verdupulse/internal/logger"
)

func TestToString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc-123", "abc-123"},
		{42, ""},
		{struct{}{}, ""},
	}
	for _, tc := range cases {
		if got := toString(tc.in); got != tc.want {
			t.Fatalf("toString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRequestLogger_PassesRequestThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init()

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/api/v1/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{"Lettuce", "Tomato"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if body := w.Body.String(); body == "" {
		t.Fatal("handler response was swallowed by the logger middleware")
	}
}

func TestRequestLogger_WithoutRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init()

	// RequestLogger must tolerate a missing RequestID middleware.
	router := gin.New()
	router.Use(RequestLogger())
	router.POST("/api/v1/expenses", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/expenses", nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("status %d, want 201", w.Code)
	}
}
