package utils

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewSlog_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewSlog(&buf, "production", "info").Info("hello", "exam_id", "e1")
	assert.Contains(t, buf.String(), `"exam_id":"e1"`)

	buf.Reset()
	NewSlog(&buf, "development", "info").Info("hello", "exam_id", "e1")
	assert.Contains(t, buf.String(), "exam_id=e1")
}

func TestLogRequest_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(NewSlog(&buf, "production", "debug"))

	logger.LogRequest("GET", "/x", 200, "1ms")
	assert.Contains(t, buf.String(), `"level":"INFO"`)

	buf.Reset()
	logger.LogRequest("GET", "/x", 404, "1ms")
	assert.Contains(t, buf.String(), `"level":"WARN"`)

	buf.Reset()
	logger.LogRequest("GET", "/x", 503, "1ms")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	base := NewSlogLogger(NewSlog(&buf, "production", "info"))

	router := gin.New()
	router.Use(RequestID(), ContextLogger(base))
	router.GET("/ping", func(c *gin.Context) {
		GetLoggerFromContext(c, base).Info("inside")
		c.Status(http.StatusOK)
	})

	t.Run("generates id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Contains(t, buf.String(), id)
	})

	t.Run("keeps caller id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	})
}

func TestToSlogLogger(t *testing.T) {
	s := slog.New(slog.DiscardHandler)
	assert.Same(t, s, ToSlogLogger(NewSlogLogger(s)))
}
