package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(buf *bytes.Buffer) chi.Router {
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	r := chi.NewRouter()
	r.Use(Logger(logger))
	r.Use(Metrics)
	r.With(Auth(testSecret)).Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return r
}

const testSecret = "0123456789abcdef0123"

func TestLogger_RecordsPrincipal(t *testing.T) {
	var buf bytes.Buffer
	router := newTestRouter(&buf)

	token, err := SignToken([]byte(testSecret), entities.Principal{ID: "u1", Role: entities.RoleUser}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "u1", line["user"])
	assert.Equal(t, "user", line["role"])
	assert.Equal(t, float64(2), line["bytes"])

	assert.Equal(t, float64(1), testutil.ToFloat64(
		httpRequestsTotal.WithLabelValues(http.MethodGet, "/orders/{id}", "200", "user"),
	))
}

func TestLogger_AnonymousRequest(t *testing.T) {
	var buf bytes.Buffer
	router := newTestRouter(&buf)

	before := testutil.ToFloat64(authFailures.WithLabelValues("missing"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/42", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "user")
	assert.Equal(t, float64(http.StatusUnauthorized), line["status"])

	assert.Equal(t, before+1, testutil.ToFloat64(authFailures.WithLabelValues("missing")))
}
