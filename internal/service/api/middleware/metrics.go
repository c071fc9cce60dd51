package middleware

import (
	"strconv"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute 라우트가 없는 요청의 경로 라벨. 임의 경로로 라벨 수가 늘어나지 않게 한다.
const unmatchedRoute = "unmatched"

// Metrics 요청 수와 처리 시간을 Prometheus 지표로 기록하는 미들웨어를 반환합니다.
// 경로 라벨은 실제 URL 대신 등록된 라우트 패턴(/api/v1/products/:id)을 사용합니다.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			method := c.Request().Method

			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}
