// Package maputil 외부 엔진 응답처럼 형태가 느슨한 맵 데이터를 구조체로 변환하는 기능을 제공합니다.
package maputil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Option 디코딩 동작을 조정하는 함수형 옵션입니다.
type Option func(*decodingConfig)

type decodingConfig struct {
	tagName          string
	weaklyTypedInput bool
	errorUnused      bool
}

// WithTagName 필드 매핑에 사용할 구조체 태그 이름을 지정합니다. (기본값: json)
func WithTagName(tagName string) Option {
	return func(c *decodingConfig) { c.tagName = tagName }
}

// WithErrorUnused 구조체에 없는 키가 입력에 있으면 에러를 반환합니다.
func WithErrorUnused(enable bool) Option {
	return func(c *decodingConfig) { c.errorUnused = enable }
}

// Decode 입력 데이터를 타입 T로 변환하여 반환합니다.
//
// 기본 동작:
//   - json 태그 기준 매핑
//   - 유연한 타입 변환 ("123" -> 123, 1 -> true)
//   - 쉼표로 구분된 문자열 -> 문자열 슬라이스
//   - 구조체에 없는 키는 무시
func Decode[T any](input any, opts ...Option) (*T, error) {
	if input == nil {
		return nil, errors.New("디코딩할 입력 데이터가 nil입니다")
	}

	cfg := &decodingConfig{
		tagName:          "json",
		weaklyTypedInput: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	output := new(T)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          cfg.tagName,
		WeaklyTypedInput: cfg.weaklyTypedInput,
		ErrorUnused:      cfg.errorUnused,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToSliceHookFunc(),
		),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}

	return output, nil
}

// stringToSliceHookFunc 쉼표로 구분된 문자열을 문자열 슬라이스로 변환합니다. []byte는 대상에서 제외합니다.
func stringToSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice || t.Elem().Kind() == reflect.Uint8 {
			return data, nil
		}

		s := reflect.ValueOf(data).String()
		if strings.TrimSpace(s) == "" {
			return []string{}, nil
		}

		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
}
