package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neekaru/walletconnect/internal/app"
	"github.com/neekaru/walletconnect/internal/config"
	"github.com/neekaru/walletconnect/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	store.Store
	stats store.Stats
	err   error
}

func (s *stubStore) Stats(ctx context.Context) (store.Stats, error) {
	return s.stats, s.err
}

func serve(t *testing.T, st store.Store, path string) map[string]any {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandlers(app.NewApp(log.New(io.Discard, "", 0), config.NewConfig(), st))
	r := gin.New()
	r.GET("/health", h.HealthCheckHandler)
	r.GET("/health/", h.HealthCheckHandlerWithSlash)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthCheckHandler(t *testing.T) {
	body := serve(t, &stubStore{stats: store.Stats{Total: 3, Linked: 2}}, "/health")

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["store"])
	assert.Equal(t, float64(3), body["total_sessions"])
	assert.Equal(t, float64(2), body["linked_sessions"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestHealthCheckHandler_StoreDown(t *testing.T) {
	body := serve(t, &stubStore{err: errors.New("database is locked")}, "/health/")

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "unavailable", body["store"])
	assert.Equal(t, float64(0), body["total_sessions"])
}
