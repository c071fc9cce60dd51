package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/pricewise-server/internal/service/api/middleware"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// hstsMaxAge HSTS 유지 기간 (1년)
const hstsMaxAge = 365 * 24 * 60 * 60

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// EnableHSTS TLS 서버일 때 Strict-Transport-Security 헤더를 추가한다
	EnableHSTS bool

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (기본값: 60초)
	// 타임아웃 초과 시 컨텍스트를 취소하고 503 응답을 반환합니다.
	RequestTimeout time.Duration

	// IP별 초당 요청 수와 버스트 (0이면 기본값: 20 req/s, 버스트 40)
	RateLimitRequestsPerSecond float64
	RateLimitBurst             int
}

// NewHTTPServer 미들웨어 체인이 구성된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 적용 순서:
//
//  1. PanicRecovery: 다른 미들웨어의 panic까지 복구하도록 가장 바깥에 둔다
//  2. RequestID: 이후 로그에 request_id가 포함된다
//  3. Server 헤더 제거
//  4. HTTPLogger: 429/503 응답도 기록되도록 RateLimit, Timeout보다 앞에 둔다
//  5. Metrics: 라우트 패턴 기준 요청 수와 처리 시간
//  6. RateLimiting: IP별 토큰 버킷 (기본 20 req/s, 버스트 40)
//  7. BodyLimit: 기본 256KB, 초과 시 413
//  8. Timeout: 기본 60초, 초과 시 503
//  9. CORS
//  10. Secure: 보안 헤더, TLS 서버이면 HSTS 포함
//
// 라우트는 포함되지 않으며, 반환된 인스턴스에 별도로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그도 애플리케이션 로거로 보낸다
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	rps, burst := cfg.RateLimitRequestsPerSecond, cfg.RateLimitBurst
	if rps <= 0 {
		rps = constants.DefaultRateLimitPerSecond
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	secureConfig := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secureConfig.HSTSMaxAge = hstsMaxAge
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.Metrics())
	e.Use(appmiddleware.RateLimiting(rps, burst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.SecureWithConfig(secureConfig))

	return e
}
