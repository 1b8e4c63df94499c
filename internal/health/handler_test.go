package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-service/internal/health"
)

func TestHealthEndpoints(t *testing.T) {
	router := chi.NewRouter()
	health.NewHandler().RegisterRoutes(router)

	for path, want := range map[string]string{"/health": "ok", "/ready": "ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp health.HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, want, resp.Status)
	}
}
