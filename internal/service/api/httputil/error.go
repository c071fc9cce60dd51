package httputil

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// statusByErrorType AppError 종류별 HTTP 상태 코드. 없는 종류는 500으로 응답한다.
var statusByErrorType = map[apperrors.ErrorType]int{
	apperrors.InvalidInput: http.StatusBadRequest,
	apperrors.Unauthorized: http.StatusUnauthorized,
	apperrors.Forbidden:    http.StatusForbidden,
	apperrors.NotFound:     http.StatusNotFound,
	apperrors.Conflict:     http.StatusConflict,
	apperrors.Unavailable:  http.StatusServiceUnavailable,
	apperrors.Timeout:      http.StatusGatewayTimeout,
}

// StatusAndMessage 에러를 HTTP 상태 코드와 클라이언트에게 보여줄 메시지로 변환합니다.
//
// 5xx 중 500은 내부 정보가 노출되지 않도록 고정된 메시지를 사용합니다.
func StatusAndMessage(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch msg := he.Message.(type) {
		case string:
			return he.Code, msg
		case response.ErrorResponse:
			return he.Code, msg.Message
		default:
			return he.Code, http.StatusText(he.Code)
		}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code, ok := statusByErrorType[appErr.Type()]
		if !ok {
			return http.StatusInternalServerError, constants.ErrMsgInternalServer
		}
		return code, appErr.Message()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, constants.ErrMsgGatewayTimeout
	}

	return http.StatusInternalServerError, constants.ErrMsgInternalServer
}

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 에러를 표준 ErrorResponse JSON 형식으로 변환하여 반환하고,
// 상태 코드에 따라 Error(5xx) 또는 Warn(4xx) 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := StatusAndMessage(err)

	// 라우팅 실패로 생긴 404는 echo 기본 메시지 대신 한국어 메시지로 통일
	if errors.Is(err, echo.ErrNotFound) {
		message = constants.ErrMsgNotFound
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if user, err := auth.GetUser(c); err == nil {
		fields["user_id"] = user.ID
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 (스트리밍 도중 실패 등)
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
