package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout 설정에 요청 타임아웃이 없을 때 적용된다
	DefaultRequestTimeout = 60 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기
	DefaultMaxBodySize = "256K"

	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	// DefaultWriteTimeout XLSX 내보내기를 고려하여 요청 타임아웃보다 길게 둔다
	DefaultWriteTimeout = 90 * time.Second
	DefaultIdleTimeout  = 120 * time.Second

	DefaultRateLimitPerSecond = 20
	DefaultRateLimitBurst     = 40
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"access_token",
	"token",
	"api_key",
	"password",
	"secret",
}

// 헬스체크 상태
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	DependencyStore             = "store"
	DependencyNotificationQueue = "notification"
)
