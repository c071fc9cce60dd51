package system

// VersionResponse 서버 빌드 정보 응답
type VersionResponse struct {
	Version     string `json:"version" example:"1.0.0"`
	Commit      string `json:"commit,omitempty" example:"abc1234"`
	BuildDate   string `json:"build_date" example:"2026-05-01T14:00:00Z"`
	BuildNumber string `json:"build_number" example:"100"`
	GoVersion   string `json:"go_version" example:"go1.24.0"`
}
