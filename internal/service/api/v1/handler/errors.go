package handler

import (
	"fmt"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricewise-server/internal/store"
)

// NewErrInvalidBody 요청 본문의 JSON 형식이 올바르지 않을 때 발생하는 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrInvalidQueryParam 쿼리/경로 파라미터의 형식이 올바르지 않을 때 발생하는 에러를 생성합니다.
func NewErrInvalidQueryParam(name, value, expected string) error {
	return apperrors.Newf(apperrors.InvalidInput, "'%s' 파라미터는 %s여야 합니다 (입력값: %s)", name, expected, value)
}

// NewErrProductIDsRequired 비교할 상품 ID가 하나도 없을 때 발생하는 에러를 생성합니다.
func NewErrProductIDsRequired() error {
	return apperrors.New(apperrors.InvalidInput, "비교할 상품 ID를 하나 이상 입력해 주세요")
}

// NewErrTooManyProducts 한 번에 비교할 수 있는 상품 수를 넘었을 때 발생하는 에러를 생성합니다.
func NewErrTooManyProducts(n int) error {
	return apperrors.Newf(apperrors.InvalidInput, "한 번에 최대 %d개의 상품만 비교할 수 있습니다 (요청: %d개)", store.MaxCompareProducts, n)
}

// NewErrNoProductsFound 요청한 ID에 해당하는 상품이 하나도 없을 때 발생하는 에러를 생성합니다.
func NewErrNoProductsFound() error {
	return apperrors.New(apperrors.NotFound, "비교할 상품을 찾을 수 없습니다")
}

// NewErrImporterUnavailable 수집기가 설정되지 않았을 때 발생하는 에러를 생성합니다.
func NewErrImporterUnavailable() error {
	return httputil.NewServiceUnavailableError("카탈로그 수집기가 설정되지 않았습니다")
}

func defaultComparisonName(date string) string {
	return fmt.Sprintf("Comparison %s", date)
}
