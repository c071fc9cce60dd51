package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

// 텔레그램 봇 토큰 형식 (예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

// newValidator 설정 검증용 Validator를 생성합니다. 에러 메시지에는 json 필드명이 사용됩니다.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cron", validateCron); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cron' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("telegram_bot_token", validateTelegramBotToken); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'telegram_bot_token' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateCron 빈 값은 통과시키며 필수 여부는 required_if가 판단한다.
func validateCron(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || cronx.Validate(s) == nil
}

func validateTelegramBotToken(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || telegramBotTokenRegex.MatchString(s)
}

// checkStruct 구조체를 태그 규칙에 따라 검증하고 첫 번째 위반 사항을 도메인 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.Wrapf(err, apperrors.Internal, "%s 설정 검증 중 예기치 않은 오류가 발생했습니다", contextName)
	}

	fe := validationErrors[0]
	// Namespace는 "HTTPServerConfig.listen_port" 형태이므로 구조체 타입명을 설정 경로로 바꾼다
	_, rest, _ := strings.Cut(fe.Namespace(), ".")
	field := contextName + "." + rest

	switch fe.Tag() {
	case "required", "required_if":
		return apperrors.Newf(apperrors.InvalidInput, "필수 설정(%s)이 누락되었습니다", field)
	case "min", "gte":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)은 %s 이상이어야 합니다: '%v'", field, fe.Param(), fe.Value())
	case "max", "lte":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)은 %s 이하여야 합니다: '%v'", field, fe.Param(), fe.Value())
	case "gt":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)은 %s보다 커야 합니다: '%v'", field, fe.Param(), fe.Value())
	case "gtefield":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)은 %s 값 이상이어야 합니다: '%v'", field, fe.Param(), fe.Value())
	case "oneof":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)은 [%s] 중 하나여야 합니다: '%v'", field, fe.Param(), fe.Value())
	case "url":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)의 URL 형식이 올바르지 않습니다: '%v'", field, fe.Value())
	case "cron":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)의 스케줄 표현식이 올바르지 않습니다: '%v'", field, fe.Value())
	case "telegram_bot_token":
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)의 텔레그램 봇 토큰 형식이 올바르지 않습니다", field)
	default:
		return apperrors.Newf(apperrors.InvalidInput, "설정(%s)이 올바르지 않습니다 (규칙: %s)", field, fe.Tag())
	}
}

// checkUniqueField 목록 내에서 key 함수가 반환하는 값이 중복되지 않는지 검사합니다.
func checkUniqueField[T any](items []T, key func(T) string, contextName string) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := key(item)
		if _, exists := seen[k]; exists {
			return apperrors.Newf(apperrors.InvalidInput, "%s 항목의 식별자(%s)가 중복되었습니다", contextName, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
