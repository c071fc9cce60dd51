package system

// DependencyStatus 외부 의존성의 상태
type DependencyStatus struct {
	Status    string `json:"status" example:"healthy"`
	LatencyMs int64  `json:"latency_ms,omitempty" example:"5"`
	Message   string `json:"message,omitempty" example:"정상 작동 중"`
}

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`

	// Uptime 서버 가동 시간 (초)
	Uptime int64 `json:"uptime" example:"3600"`

	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}
