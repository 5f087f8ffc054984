package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestContextWithLogger_KeepsExistingLogger(t *testing.T) {
	ctx, first := ContextWithLogger(context.Background(), "req-1")
	ctx2, second := ContextWithLogger(ctx, "req-2")

	assert.Same(t, first, second)
	assert.Equal(t, "req-1", RequestIDFromContext(ctx2))
}

func TestContextWithLogger_GeneratesID(t *testing.T) {
	ctx, _ := ContextWithLogger(context.Background(), "")
	assert.NotEmpty(t, RequestIDFromContext(ctx))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestMiddleware_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
