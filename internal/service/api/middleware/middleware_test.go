package middleware

import (
	"net/http"
	"net/http/httptest"

	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
)

// newTestEcho 애플리케이션 에러 핸들러가 설정된 Echo 인스턴스를 생성합니다.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
