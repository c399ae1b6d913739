package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var seen string

	router.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "generated request ID should be a UUID")
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

func TestRequestID_PropagatesIncomingHeader(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var fromRequestCtx string

	router.GET("/", func(c *gin.Context) {
		fromRequestCtx = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "incoming-id")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "incoming-id", fromRequestCtx)
	assert.Equal(t, "incoming-id", rec.Header().Get(HeaderRequestID))
}

func TestRequestIDFromContext_MissingOrNil(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // nil safety is part of the contract
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(discardLogger()))

	router.GET("/boom", func(_ *gin.Context) {
		panic("unexpected")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestLogging_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(Logging(discardLogger()))

	router.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
