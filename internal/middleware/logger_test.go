package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestRouter(logger *zap.SugaredLogger, skip ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(logger, skip...))
	r.GET("/teams/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	r.GET("/error", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	})
	r.GET("/server-error", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func observed() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func TestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expectedLevel zapcore.Level
	}{
		{"successful request", "/teams/t1", zapcore.InfoLevel},
		{"client error", "/error", zapcore.WarnLevel},
		{"server error", "/server-error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := observed()
			router := setupTestRouter(logger)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)
			assert.Equal(t, "HTTP request", entries[0].Message)
		})
	}
}

func TestLogger_LogsRequestDetails(t *testing.T) {
	logger, logs := observed()
	router := setupTestRouter(logger)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teams/t1?view=full", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "/teams/t1", fields["path"])
	assert.Equal(t, "/teams/:id", fields["route"])
	assert.Equal(t, "view=full", fields["query"])
	assert.Contains(t, fields, "size")
	assert.Contains(t, fields, "latency_ms")
}

func TestLogger_SkipsPrefixes(t *testing.T) {
	logger, logs := observed()
	router := setupTestRouter(logger, "/health")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, logs.Len())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teams/t2", nil))
	assert.Equal(t, 1, logs.Len())
}
