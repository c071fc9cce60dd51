package comparison

import (
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
)

// newErrInvalidFilter 필터 조건 검증 실패를 감쌉니다. 조회 전에 반환되며 요청 전체가 거부됩니다.
func newErrInvalidFilter(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "가격 비교 필터 조건이 올바르지 않습니다")
}

// newErrMalformedRecord 식별 필드가 누락된 레코드입니다. 요청을 실패시키지 않고 해당 레코드만 건너뜁니다.
func newErrMalformedRecord(productID string, missing []string) error {
	return apperrors.Newf(apperrors.ParsingFailed, "상품 레코드(%s)의 필수 식별 필드가 누락되었습니다: %s", productID, strings.Join(missing, ", "))
}

// newErrInvalidRecordPrice 가격이 음수이거나 유한한 숫자가 아닌 레코드입니다. 해당 레코드만 건너뜁니다.
func newErrInvalidRecordPrice(productID string, price float64) error {
	return apperrors.Newf(apperrors.ParsingFailed, "상품 레코드(%s)의 가격이 올바르지 않습니다: %v", productID, price)
}

// IsInvalidFilter Compare가 반환한 에러가 필터 조건 오류인지 확인합니다.
func IsInvalidFilter(err error) bool {
	return apperrors.Is(err, apperrors.InvalidInput)
}
