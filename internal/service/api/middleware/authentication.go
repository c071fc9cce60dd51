package middleware

import (
	"strings"

	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "bearer "

// RequireAuthentication Authorization 헤더의 Bearer 토큰을 검증하는 미들웨어를 반환합니다.
//
// 인증에 성공하면 사용자 정보를 Context에 저장하고(auth.SetUser) 다음 핸들러로 넘깁니다.
// 토큰이 없거나 유효하지 않으면 401 Unauthorized로 응답합니다.
//
// authenticator가 nil이면 panic이 발생합니다.
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic(constants.PanicMsgAuthenticatorRequired)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return ErrTokenRequired
			}

			user, err := authenticator.Authenticate(token)
			if err != nil {
				applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
					"method":    c.Request().Method,
					"path":      c.Path(),
					"remote_ip": c.RealIP(),
					"error":     err,
				}).Warn("토큰 인증 실패")

				return err
			}

			auth.SetUser(c, user)

			return next(c)
		}
	}
}

// RequireAdmin 관리자 역할을 가진 사용자만 통과시킵니다. RequireAuthentication 뒤에 등록해야 합니다.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.MustGetUser(c).IsAdmin() {
				return ErrAdminRequired
			}
			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
