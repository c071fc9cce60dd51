package advisor

import (
	"errors"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check 요청을 검증하고 첫 번째 위반 사항을 InvalidInput 에러로 반환합니다.
func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "추천 요청이 올바르지 않습니다")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.Newf(apperrors.InvalidInput, "필수 입력값이 누락되었습니다: %s", fe.Field())
	default:
		return apperrors.Newf(apperrors.InvalidInput, "입력값이 올바르지 않습니다: %s (조건: %s=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
}
