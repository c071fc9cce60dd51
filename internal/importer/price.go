package importer

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
)

// priceNumberRe 통화 표기("Rs.", "PKR", "₨")를 건너뛰고 첫 번째 숫자 덩어리를 찾는다.
var priceNumberRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice 상품 카드에 표시된 가격 문자열에서 숫자 값을 추출합니다.
//
// 예: "Rs. 1,299" → 1299, "PKR 2,450.50" → 2450.5
func ParsePrice(s string) (float64, error) {
	m := priceNumberRe.FindString(s)
	if m == "" {
		return 0, apperrors.Newf(apperrors.ParsingFailed, "가격 정보를 찾을 수 없습니다: %q", strings.TrimSpace(s))
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, apperrors.Wrapf(err, apperrors.ParsingFailed, "가격 변환에 실패했습니다: %q", m)
	}

	return v, nil
}
