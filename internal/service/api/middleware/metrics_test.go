package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/pricewise-server/internal/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	e.Use(Metrics())
	e.GET("/metrics-test/items/:id", okHandler)
	e.GET("/metrics-test/missing", func(echo.Context) error { return echo.ErrNotFound })

	ok := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/items/:id", "200")
	notFound := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/missing", "404")
	beforeOK, beforeNotFound := testutil.ToFloat64(ok), testutil.ToFloat64(notFound)

	serve(e, httptest.NewRequest(http.MethodGet, "/metrics-test/items/1", nil))
	serve(e, httptest.NewRequest(http.MethodGet, "/metrics-test/items/2", nil))
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics-test/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, beforeOK+2, testutil.ToFloat64(ok), "경로 라벨은 라우트 패턴이어야 합니다")
	assert.Equal(t, beforeNotFound+1, testutil.ToFloat64(notFound))
}
