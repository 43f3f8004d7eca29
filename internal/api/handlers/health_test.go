package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supporthub/chat-routing-service/internal/api/dto"
	"github.com/supporthub/chat-routing-service/internal/api/handlers"
	"github.com/supporthub/chat-routing-service/internal/mocks"
)

func setupHealthRouter(store *mocks.MockStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewHealthHandler(store)
	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready)
	router.GET("/live", handler.Live)
	return router
}

func TestHealth_Healthy(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("Ping", mock.Anything).Return(nil)
	router := setupHealthRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Components["sessionstore"])
}

func TestHealth_StoreDown(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	router := setupHealthRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
}

func TestReady(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("Ping", mock.Anything).Return(nil)
	router := setupHealthRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReady_StoreDown(t *testing.T) {
	store := &mocks.MockStore{}
	store.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	router := setupHealthRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLive_AlwaysOK(t *testing.T) {
	store := &mocks.MockStore{}
	router := setupHealthRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertNotCalled(t, "Ping", mock.Anything)
}
