package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	_ "github.com/darkkaiser/pricewise-server/docs"
	"github.com/darkkaiser/pricewise-server/internal/config"
	"github.com/darkkaiser/pricewise-server/internal/pkg/version"
	apiauth "github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/pricewise-server/internal/service/api/v1"
	v1handler "github.com/darkkaiser/pricewise-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/pricewise-server/internal/service/notification"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// shutdownTimeout Graceful Shutdown 시 최대 대기 시간 (5초)
	shutdownTimeout = 5 * time.Second
)

// Dependencies API 서비스가 사용하는 협력 객체 묶음입니다.
type Dependencies struct {
	// V1 v1 API 핸들러가 사용하는 도메인 서비스
	V1 v1handler.Dependencies

	// NotificationSender 서버가 예기치 않게 종료되었을 때 관리자에게 알린다
	NotificationSender notification.Sender

	// HealthCheckers /health에서 확인할 의존성 (이름 → 검사기)
	HealthCheckers map[string]system.HealthChecker
}

// Service 가격 비교 API 서버의 생명주기를 관리하는 서비스입니다.
//
// 이 서비스는 다음과 같은 역할을 수행합니다:
//   - Echo 기반 HTTP/HTTPS 서버 시작 및 종료
//   - 미들웨어 체인 설정 (PanicRecovery, RequestID, HTTPLogger, Metrics, RateLimiting, CORS, Secure)
//   - JWT Bearer 인증으로 사용자 API 보호
//   - API 엔드포인트 라우팅 (Health Check, Version, Metrics, Swagger, v1 API)
//   - Graceful Shutdown 지원 (5초 타임아웃)
//
// Start() 메서드로 시작하고, context 취소로 종료됩니다.
type Service struct {
	appConfig *config.AppConfig

	v1Handler          *v1handler.Handler
	notificationSender notification.Sender
	healthCheckers     map[string]system.HealthChecker

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. 필수 의존성이 없으면 panic이 발생합니다.
func NewService(appConfig *config.AppConfig, deps Dependencies, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if deps.NotificationSender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}

	return &Service{
		appConfig: appConfig,

		v1Handler:          v1handler.NewHandler(deps.V1),
		notificationSender: deps.NotificationSender,
		healthCheckers:     deps.HealthCheckers,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 실제 서버는 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
// 서비스가 완전히 종료되면 serviceStopWG.Done()이 호출됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// runServiceLoop 서버 설정, HTTP 서버 시작, Shutdown 대기를 순차적으로 수행합니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	authenticator := apiauth.NewAuthenticator(s.appConfig.Auth)

	systemHandler := system.NewHandler(s.healthCheckers, s.buildInfo)

	httpCfg := s.appConfig.HTTPServer
	e := NewHTTPServer(HTTPServerConfig{
		Debug:                      s.appConfig.Debug,
		EnableHSTS:                 httpCfg.TLSServer,
		AllowOrigins:               httpCfg.AllowOrigins,
		RequestTimeout:             httpCfg.RequestTimeout,
		RateLimitRequestsPerSecond: httpCfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:             httpCfg.RateLimit.Burst,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, s.v1Handler, authenticator)

	return e
}

// startHTTPServer HTTP/HTTPS 서버를 시작합니다. 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	httpCfg := s.appConfig.HTTPServer
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": httpCfg.ListenPort,
		"tls":  httpCfg.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if httpCfg.TLSServer {
		err = e.StartTLS(fmt.Sprintf(":%d", httpCfg.ListenPort), httpCfg.TLSCertFile, httpCfg.TLSKeyFile)
	} else {
		err = e.Start(fmt.Sprintf(":%d", httpCfg.ListenPort))
	}

	s.handleServerError(err)
}

// handleServerError HTTP 서버 시작 중 발생한 에러를 처리합니다.
//
//   - nil: 처리하지 않음
//   - http.ErrServerClosed: Graceful Shutdown
//   - 그 외: Error 로깅 후 관리자 알림
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	message := constants.LogMsgServiceHTTPServerFatalError
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HTTPServer.ListenPort,
		"error": err,
	}).Error(message)

	if notifyErr := s.notificationSender.NotifyError(context.Background(), fmt.Sprintf("%s\r\n\r\n%s", message, err)); notifyErr != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": notifyErr,
		}).Warn("서버 오류 알림 발송 요청에 실패했습니다")
	}
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 종료되었으면 Shutdown 없이 상태만 정리한다
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
