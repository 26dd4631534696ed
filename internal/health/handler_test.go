package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, handler)
	return router
}

func doCheck(t *testing.T, handler *Handler) (int, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	setupRouter(handler).ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandler_Check(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("database is healthy", func(t *testing.T) {
		handler := New(map[string]Check{"store": DatabaseCheck(setupTestDB(t))}, logger)

		code, resp := doCheck(t, handler)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, map[string]string{"store": "ok"}, resp.Checks)
	})

	t.Run("database is unavailable", func(t *testing.T) {
		db := setupTestDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
		handler := New(map[string]Check{"store": DatabaseCheck(db)}, logger)

		code, resp := doCheck(t, handler)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "unhealthy", resp.Checks["store"])
	})

	t.Run("one failing check marks the service unhealthy", func(t *testing.T) {
		handler := New(map[string]Check{
			"store": DatabaseCheck(setupTestDB(t)),
			"relay": func(context.Context) error { return errors.New("redis down") },
		}, logger)

		code, resp := doCheck(t, handler)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, map[string]string{"store": "ok", "relay": "unhealthy"}, resp.Checks)
	})

	t.Run("checks get a deadline", func(t *testing.T) {
		var hadDeadline bool
		handler := New(map[string]Check{
			"cache": func(ctx context.Context) error {
				_, hadDeadline = ctx.Deadline()
				return nil
			},
		}, logger)

		code, _ := doCheck(t, handler)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, hadDeadline)
	})

	t.Run("no checks", func(t *testing.T) {
		code, resp := doCheck(t, New(nil, logger))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", resp.Status)
	})
}
