package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"InvalidInput", apperrors.New(apperrors.InvalidInput, "잘못된 필터"), http.StatusBadRequest, "잘못된 필터"},
		{"Unauthorized", apperrors.New(apperrors.Unauthorized, "토큰 없음"), http.StatusUnauthorized, "토큰 없음"},
		{"Forbidden", apperrors.New(apperrors.Forbidden, "권한 없음"), http.StatusForbidden, "권한 없음"},
		{"NotFound", apperrors.New(apperrors.NotFound, "상품 없음"), http.StatusNotFound, "상품 없음"},
		{"Conflict", apperrors.New(apperrors.Conflict, "중복"), http.StatusConflict, "중복"},
		{"Unavailable", apperrors.New(apperrors.Unavailable, "엔진 중단"), http.StatusServiceUnavailable, "엔진 중단"},
		{"Timeout", apperrors.New(apperrors.Timeout, "시간 초과"), http.StatusGatewayTimeout, "시간 초과"},
		{"System은 내부 메시지를 숨김", apperrors.New(apperrors.System, "DB 연결 실패"), http.StatusInternalServerError, "내부 서버 오류가 발생했습니다"},
		{"ExecutionFailed", apperrors.New(apperrors.ExecutionFailed, "exit 1"), http.StatusInternalServerError, "내부 서버 오류가 발생했습니다"},
		{"바깥쪽 타입 기준", apperrors.Wrap(apperrors.New(apperrors.System, "db"), apperrors.NotFound, "없음"), http.StatusNotFound, "없음"},
		{"echo HTTPError 문자열", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too large"), http.StatusRequestEntityTooLarge, "too large"},
		{"echo HTTPError 응답 본문", NewBadRequestError("limit 오류"), http.StatusBadRequest, "limit 오류"},
		{"컨텍스트 타임아웃", context.DeadlineExceeded, http.StatusGatewayTimeout, "요청 처리 시간이 초과되었습니다"},
		{"일반 에러", errors.New("unexpected"), http.StatusInternalServerError, "내부 서버 오류가 발생했습니다"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, message := StatusAndMessage(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	e := echo.New()

	t.Run("JSON 응답", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/comparison", nil), rec)
		auth.SetUser(c, &auth.User{ID: "u1"})

		ErrorHandler(apperrors.New(apperrors.InvalidInput, "최소 가격은 음수일 수 없습니다: -1"), c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"result_code":400,"message":"최소 가격은 음수일 수 없습니다: -1"}`, rec.Body.String())
	})

	t.Run("라우트 없음", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ErrorHandler(echo.ErrNotFound, e.NewContext(httptest.NewRequest(http.MethodGet, "/nope", nil), rec))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"result_code":404,"message":"요청한 리소스를 찾을 수 없습니다"}`, rec.Body.String())
	})

	t.Run("HEAD 요청은 본문 없음", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ErrorHandler(apperrors.New(apperrors.NotFound, "없음"), e.NewContext(httptest.NewRequest(http.MethodHead, "/x", nil), rec))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("이미 응답이 전송된 경우", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
		_ = c.String(http.StatusOK, "partial")

		ErrorHandler(errors.New("late"), c)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "partial", rec.Body.String())
	})
}
