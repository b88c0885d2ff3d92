package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
	"github.com/noah-isme/itinerary-planner-api/internal/service"
)

func TestMetricsHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	healthy := PingFunc(func(ctx context.Context) error { return nil })
	down := PingFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	handler := NewMetricsHandler(nil, map[string]Pinger{"postgres": healthy})
	c, w := newTestContext(http.MethodGet, "/ready", nil, nil)
	handler.Ready(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"postgres":"ok"}}`, w.Body.String())

	handler = NewMetricsHandler(nil, map[string]Pinger{"postgres": healthy, "redis": down})
	c, w = newTestContext(http.MethodGet, "/ready", nil, nil)
	handler.Ready(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"postgres":"ok","redis":"connection refused"}}`, w.Body.String())
}

func TestMetricsHandlerPrometheusAndSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	metrics.ObservePlan(&scheduler.Result{
		Outcome: scheduler.OutcomeNoSolution,
		Reason:  scheduler.ReasonExhausted,
		Stats:   scheduler.Stats{Nodes: 12},
	})
	metrics.ObserveCachedPlan(scheduler.OutcomeNoSolution, scheduler.ReasonExhausted)
	handler := NewMetricsHandler(metrics, nil)

	router := gin.New()
	router.GET("/metrics", handler.Prometheus)
	router.GET("/metrics/summary", handler.Summary)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `planner_plans_total{outcome="no_solution",reason="exhausted"} 2`)
	assert.Contains(t, w.Body.String(), `planner_plans_cached_total{outcome="no_solution"} 1`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["plans_no_solution"])
	assert.Equal(t, float64(1), data["plans_cached"])
	assert.Equal(t, float64(12), data["average_search_nodes"])
}

func TestMetricsHandlerPrometheusDisabled(t *testing.T) {
	handler := NewMetricsHandler(nil, nil)

	c, w := newTestContext(http.MethodGet, "/metrics", nil, nil)
	handler.Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, c.IsAborted())

	router := gin.New()
	router.GET("/metrics", handler.Prometheus)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Body.String())
}
