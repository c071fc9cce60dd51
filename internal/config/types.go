package config

import (
	"time"
)

// AppConfig 애플리케이션 전체 설정입니다.
type AppConfig struct {
	Debug bool `json:"debug"`

	HTTPServer   HTTPServerConfig   `json:"http_server"`
	Auth         AuthConfig         `json:"auth"`
	Storage      StorageConfig      `json:"storage"`
	Comparison   ComparisonConfig   `json:"comparison"`
	Prediction   EngineConfig       `json:"prediction"`
	Advisor      EngineConfig       `json:"advisor"`
	Tracker      TrackerConfig      `json:"tracker"`
	Importer     ImporterConfig     `json:"importer"`
	Notification NotificationConfig `json:"notification"`
}

// HTTPServerConfig REST API 서버 설정
type HTTPServerConfig struct {
	ListenPort     int           `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer      bool          `json:"tls_server"`
	TLSCertFile    string        `json:"tls_cert_file" validate:"required_if=TLSServer true"`
	TLSKeyFile     string        `json:"tls_key_file" validate:"required_if=TLSServer true"`
	AllowOrigins   []string      `json:"allow_origins" validate:"dive,required"`
	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`
	RateLimit      RateLimit     `json:"rate_limit"`
}

// RateLimit IP별 요청 속도 제한 설정
type RateLimit struct {
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" validate:"min=1"`
}

// AuthConfig 외부 인증 서비스가 발급한 JWT를 검증하기 위한 설정
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret" validate:"required,min=16"`
	Issuer    string `json:"issuer"`
}

// StorageConfig 상품 저장소 설정
type StorageConfig struct {
	Driver          string        `json:"driver" validate:"oneof=memory postgres"`
	DSN             string        `json:"dsn" validate:"required_if=Driver postgres"`
	MaxOpenConns    int           `json:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `json:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

// ComparisonConfig 가격 비교 그룹핑/통계 설정
type ComparisonConfig struct {
	// SavingsThreshold 절약 기회로 집계할 그룹 내 최소 가격차(초과 기준)
	SavingsThreshold float64 `json:"savings_threshold" validate:"gte=0"`
	DefaultLimit     int     `json:"default_limit" validate:"min=1"`
	MaxLimit         int     `json:"max_limit" validate:"min=1,gtefield=DefaultLimit"`
	Granularity      string  `json:"granularity" validate:"oneof=coarse fine"`
	Sort             string  `json:"sort" validate:"oneof=offers price"`
}

// EngineConfig 외부 프로세스 엔진(가격 예측, 스타일 추천) 실행 설정
type EngineConfig struct {
	Command string        `json:"command"`
	Args    []string      `json:"args"`
	Timeout time.Duration `json:"timeout" validate:"gt=0"`

	// 연속 실패가 이 횟수에 도달하면 서킷 브레이커가 열린다
	FailureThreshold uint32        `json:"failure_threshold" validate:"min=1"`
	OpenTimeout      time.Duration `json:"open_timeout" validate:"gt=0"`
}

// Enabled 실행할 명령이 설정되어 있는지 여부
func (c EngineConfig) Enabled() bool {
	return c.Command != ""
}

// TrackerConfig 가격 추적 스케줄러 설정
type TrackerConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule" validate:"required_if=Enabled true,cron"`
}

// ImporterConfig 카탈로그 수집 설정
type ImporterConfig struct {
	Enabled  bool           `json:"enabled"`
	Schedule string         `json:"schedule" validate:"required_if=Enabled true,cron"`
	Timeout  time.Duration  `json:"timeout" validate:"gt=0"`
	Sources  []ImportSource `json:"sources" validate:"dive"`
}

// ImportSource 하나의 카탈로그 목록 페이지와 파싱 규칙
type ImportSource struct {
	ID        string          `json:"id" validate:"required"`
	URL       string          `json:"url" validate:"required,url"`
	Category  string          `json:"category" validate:"required"`
	Brand     string          `json:"brand"`
	Selectors ImportSelectors `json:"selectors"`
}

// ImportSelectors 상품 카드 파싱용 CSS 선택자
type ImportSelectors struct {
	Item          string `json:"item" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Brand         string `json:"brand"`
	Price         string `json:"price" validate:"required"`
	OriginalPrice string `json:"original_price"`
	Link          string `json:"link"`
	Image         string `json:"image"`
}

// NotificationConfig 가격 알림 발송 설정
type NotificationConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
}

// Default 기본값으로 채워진 설정을 반환합니다. 검증은 수행하지 않습니다.
func Default() *AppConfig {
	c := newDefaultConfig()
	return &c
}

// newDefaultConfig 설정 파일과 환경 변수가 덮어쓰기 전의 기본값입니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		HTTPServer: HTTPServerConfig{
			ListenPort:     DefaultListenPort,
			AllowOrigins:   []string{"*"},
			RequestTimeout: 60 * time.Second,
			RateLimit: RateLimit{
				RequestsPerSecond: 20,
				Burst:             40,
			},
		},
		Storage: StorageConfig{
			Driver:          "memory",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Comparison: ComparisonConfig{
			SavingsThreshold: DefaultSavingsThreshold,
			DefaultLimit:     50,
			MaxLimit:         500,
			Granularity:      "coarse",
			Sort:             "offers",
		},
		Prediction: EngineConfig{
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
			OpenTimeout:      time.Minute,
		},
		Advisor: EngineConfig{
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
			OpenTimeout:      time.Minute,
		},
		Tracker: TrackerConfig{
			Schedule: "0 0 */6 * * *",
		},
		Importer: ImporterConfig{
			Schedule: "0 30 3 * * *",
			Timeout:  30 * time.Second,
		},
	}
}
