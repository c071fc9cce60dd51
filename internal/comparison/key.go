package comparison

import (
	"strings"
	"unicode"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Granularity 그룹핑 단위입니다.
type Granularity string

const (
	// GranularityCoarse 브랜드가 달라도 같은 상품이면 하나의 그룹으로 묶는다. (카테고리 + 정규화된 상품명)
	GranularityCoarse Granularity = "coarse"

	// GranularityFine 상품명, 브랜드, 핏, 소재, 색상이 모두 같은 정확한 변형 단위로 묶는다.
	GranularityFine Granularity = "fine"
)

// ParseGranularity 빈 값은 GranularityCoarse로 해석합니다.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case "", GranularityCoarse:
		return GranularityCoarse, nil
	case GranularityFine:
		return GranularityFine, nil
	default:
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 그룹핑 단위입니다: '%s' (coarse, fine 중 하나)", s)
	}
}

// KeyFunc 레코드로부터 그룹 키를 만드는 함수
type KeyFunc func(r Record) string

// KeyFunc 그룹핑 단위에 맞는 키 함수를 반환합니다.
func (g Granularity) KeyFunc() KeyFunc {
	if g == GranularityFine {
		return func(r Record) string {
			return FineKey(r.Title, r.Brand, r.FitType, r.MaterialType, r.PrimaryColor)
		}
	}
	return func(r Record) string {
		return CoarseKey(r.Title, r.Category)
	}
}

// sizeStopTokens 상품명에서 제거하는 사이즈 표기
var sizeStopTokens = map[string]struct{}{
	"xs": {}, "s": {}, "m": {}, "l": {}, "xl": {}, "xxl": {}, "xxxl": {},
}

var folder = cases.Fold()

// CoarseKey "카테고리_정규화된상품명" 형식의 키를 반환합니다.
//
// 상품명이 비어 있으면 "카테고리_"가 되어 같은 카테고리의 이름 없는 상품이 모두 한 그룹으로 묶입니다.
//
//	CoarseKey("Crew T-Shirt M", "men") == "men_crew t-shirt"
func CoarseKey(title, category string) string {
	return normalizeText(category) + "_" + normalizeName(title)
}

// FineKey 정규화된 상품명, 브랜드, 핏, 소재, 색상을 밑줄로 연결한 키를 반환합니다.
// 빈 속성도 자리를 유지하므로 서로 다른 속성 조합이 같은 키로 합쳐지지 않습니다.
func FineKey(title, brand, fit, material, color string) string {
	return strings.Join([]string{
		normalizeText(title),
		normalizeText(brand),
		normalizeText(fit),
		normalizeText(material),
		normalizeText(color),
	}, "_")
}

// normalizeText 유니코드 호환 정규화, 대소문자 폴딩, 공백 축약을 적용합니다.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(folder.String(norm.NFKC.String(s))), " ")
}

// normalizeName normalizeText에 더해 사이즈 표기와 숫자만으로 된 토큰을 제거합니다.
func normalizeName(s string) string {
	tokens := strings.Fields(folder.String(norm.NFKC.String(s)))

	kept := tokens[:0]
	for _, token := range tokens {
		if _, stop := sizeStopTokens[token]; stop {
			continue
		}
		if isNumericToken(token) {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// isNumericToken "42", "2.5" 처럼 숫자와 소수점으로만 이루어진 토큰인지 확인합니다.
func isNumericToken(token string) bool {
	digits := 0
	for _, r := range token {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}
