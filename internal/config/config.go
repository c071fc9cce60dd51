// Package config 애플리케이션 설정을 로드하고 검증합니다.
//
// 설정은 다음 순서로 병합되며 뒤에 오는 값이 앞의 값을 덮어씁니다.
//  1. 코드에 정의된 기본값 (newDefaultConfig)
//  2. JSON 설정 파일 (기본값: pricewise-server.json)
//  3. .env 파일 및 환경 변수 (접두사 PRICEWISE_, 계층 구분자 __)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "pricewise-server"

	// DefaultFilename 실행 인자로 경로가 주어지지 않을 때 탐색하는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	EnvPrefix = "PRICEWISE_"

	// DefaultListenPort API 서버 기본 포트
	DefaultListenPort = 8080

	// DefaultSavingsThreshold 절약 기회 판단 기준 가격차 기본값 (통화 단위)
	DefaultSavingsThreshold = 100.0
)

// Load 기본 설정 파일을 읽어 설정을 로드합니다. 기본 설정 파일이 없으면 기본값과 환경 변수만 사용합니다.
func Load() (*AppConfig, error) {
	return load(DefaultFilename, true)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 설정을 로드합니다. 파일이 없으면 에러를 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, false)
}

func load(filename string, allowMissing bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
		if !allowMissing {
			return nil, apperrors.Wrapf(err, apperrors.System, "설정 파일을 찾을 수 없습니다: '%s'", filename)
		}
	}

	// 3. 환경 변수 (.env 파일이 있으면 먼저 프로세스 환경에 반영, 이미 설정된 값은 유지)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, ".env 파일을 읽을 수 없습니다")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &appConfig,
			TagName:          "json",
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 koanf 키로 변환합니다.
// 예: PRICEWISE_COMPARISON__SAVINGS_THRESHOLD -> comparison.savings_threshold
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.HTTPServer, "http_server"); err != nil {
		return err
	}
	if c.HTTPServer.TLSServer {
		for _, path := range []string{c.HTTPServer.TLSCertFile, c.HTTPServer.TLSKeyFile} {
			if _, err := os.Stat(path); err != nil {
				return apperrors.Newf(apperrors.InvalidInput, "TLS 인증서 또는 키 파일을 찾을 수 없습니다: '%s'", path)
			}
		}
	}

	for _, s := range []struct {
		value any
		name  string
	}{
		{c.Auth, "auth"},
		{c.Storage, "storage"},
		{c.Comparison, "comparison"},
		{c.Prediction, "prediction"},
		{c.Advisor, "advisor"},
		{c.Tracker, "tracker"},
		{c.Importer, "importer"},
		{c.Notification.Telegram, "notification.telegram"},
	} {
		if err := checkStruct(v, s.value, s.name); err != nil {
			return err
		}
	}

	if err := checkUniqueField(c.Importer.Sources, func(s ImportSource) string { return s.ID }, "importer.sources"); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 동작에는 문제가 없지만 권장하지 않는 설정에 대한 경고 목록을 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.HTTPServer.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하고 있습니다: %d", c.HTTPServer.ListenPort))
	}
	for _, origin := range c.HTTPServer.AllowOrigins {
		if origin == "*" {
			warnings = append(warnings, "CORS 허용 출처에 와일드카드(*)가 설정되어 있습니다")
			break
		}
	}
	if c.Storage.Driver == "memory" {
		warnings = append(warnings, "메모리 저장소를 사용 중입니다. 재시작 시 모든 데이터가 사라집니다")
	}
	if !c.Prediction.Enabled() {
		warnings = append(warnings, "가격 예측 엔진 명령이 설정되지 않아 모든 예측은 대체값으로 응답합니다")
	}
	if c.Tracker.Enabled && !c.Notification.Telegram.Enabled {
		warnings = append(warnings, "가격 추적이 활성화되어 있지만 텔레그램 알림이 비활성화되어 로그로만 기록됩니다")
	}

	return warnings
}
