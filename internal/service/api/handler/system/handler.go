// Package system 헬스체크, 버전 정보 등 API 버전과 무관한 시스템 엔드포인트를 제공합니다.
package system

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/pkg/version"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/api/model/system"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// healthCheckTimeout 의존성 하나를 확인하는 최대 시간
const healthCheckTimeout = 2 * time.Second

// HealthChecker 상태를 확인할 수 있는 외부 의존성
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	dependencies map[string]HealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler dependencies의 키는 헬스체크 응답에 표시되는 의존성 이름입니다.
func NewHandler(dependencies map[string]HealthChecker, buildInfo version.Info) *Handler {
	return &Handler{
		dependencies: dependencies,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 상태 확인
// @Description 서버와 외부 의존성(저장소, 알림)의 상태를 확인합니다.
// @Description 의존성 중 하나라도 비정상이면 status는 unhealthy이며 503으로 응답합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "정상"
// @Failure 503 {object} system.HealthResponse "비정상"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	names := make([]string, 0, len(h.dependencies))
	for name := range h.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	serverStatus := constants.HealthStatusHealthy
	deps := make(map[string]system.DependencyStatus, len(names))
	for _, name := range names {
		status := h.check(c.Request().Context(), h.dependencies[name])
		if status.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
		}
		deps[name] = status
	}

	code := http.StatusOK
	if serverStatus != constants.HealthStatusHealthy {
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func (h *Handler) check(ctx context.Context, checker HealthChecker) system.DependencyStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := checker.Health(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return system.DependencyStatus{
			Status:    constants.HealthStatusUnhealthy,
			LatencyMs: latency,
			Message:   err.Error(),
		}
	}
	return system.DependencyStatus{
		Status:    constants.HealthStatusHealthy,
		LatencyMs: latency,
		Message:   "정상 작동 중",
	}
}

// VersionHandler godoc
// @Summary 서버 버전 정보 조회
// @Description 빌드 버전, 커밋, 빌드 날짜, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	goVersion := h.buildInfo.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   goVersion,
	})
}
