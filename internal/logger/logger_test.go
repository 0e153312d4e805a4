package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe routes the global logger into an in-memory core for one test.
func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, observed := observer.New(zapcore.InfoLevel)
	t.Cleanup(Replace(zap.New(core)))
	return observed
}

func TestInit(t *testing.T) {
	t.Cleanup(Replace(nil))

	t.Run("Production", func(t *testing.T) {
		require.NoError(t, Init("production"))
		assert.True(t, L().Core().Enabled(zapcore.InfoLevel))
		assert.False(t, L().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Development", func(t *testing.T) {
		require.NoError(t, Init("development"))
		assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Test", func(t *testing.T) {
		require.NoError(t, Init("test"))
		assert.False(t, L().Core().Enabled(zapcore.InfoLevel))
		assert.True(t, L().Core().Enabled(zapcore.WarnLevel))
	})
}

func TestConfigFor(t *testing.T) {
	prod := configFor("production")
	assert.Equal(t, "json", prod.Encoding)
	assert.Equal(t, "timestamp", prod.EncoderConfig.TimeKey)
	assert.Equal(t, []string{"stdout"}, prod.OutputPaths)

	dev := configFor("staging")
	assert.Equal(t, "console", dev.Encoding)
}

func TestL_LazyInit(t *testing.T) {
	restore := Replace(nil)
	t.Cleanup(restore)
	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
	assert.False(t, L().Core().Enabled(zapcore.InfoLevel))
}

func TestReplace(t *testing.T) {
	first := zap.NewNop()
	restoreFirst := Replace(first)
	defer restoreFirst()

	second := zap.NewExample()
	restore := Replace(second)
	assert.Same(t, second, L())

	restore()
	assert.Same(t, first, L())
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestIDFrom(ctx))

	ctx = WithRequestID(ctx, "test-request-id-123")
	assert.Equal(t, "test-request-id-123", RequestIDFrom(ctx))
}

func TestFromCtx(t *testing.T) {
	observed := observe(t)

	t.Run("WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc-123")
		FromCtx(ctx).Info("with id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "with id", logs[0].Message)
		assert.Equal(t, "req-abc-123", logs[0].ContextMap()["request_id"])
	})

	t.Run("WithoutRequestID", func(t *testing.T) {
		FromCtx(context.Background()).Info("without id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify Request ID is injected into context
		rid := RequestIDFrom(r.Context())
		assert.NotEmpty(t, rid)
	})

	handler := RequestIDMiddleware(nextHandler)

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		existingID := "test-id-123"
		req.Header.Set("X-Request-ID", existingID)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, existingID, w.Header().Get("X-Request-ID"))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	observed := observe(t)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Default status", func(t *testing.T) {
		handler := LoggingMiddleware(nextHandler)
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, "incoming request", logs[0].Message)
		assert.Equal(t, "/test", logs[0].ContextMap()["path"])
		assert.Equal(t, int64(http.StatusOK), logs[0].ContextMap()["status"])
	})

	t.Run("Captures status", func(t *testing.T) {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		req := httptest.NewRequest("DELETE", "/product/abc", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, int64(http.StatusNotFound), logs[0].ContextMap()["status"])
		assert.Equal(t, "DELETE", logs[0].ContextMap()["method"])
	})
}
