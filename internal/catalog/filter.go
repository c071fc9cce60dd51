package catalog

import (
	"math"
	"sort"
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/pkg/strutil"
)

// SortField 상품 목록 정렬 기준
type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByRating    SortField = "rating"
	SortByCreatedAt SortField = "createdAt"
)

// ParseSortField 요청 파라미터를 SortField로 변환합니다. 빈 값은 가격순입니다.
func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.TrimSpace(s)) {
	case "", SortByPrice:
		return SortByPrice, nil
	case SortByName:
		return SortByName, nil
	case SortByRating:
		return SortByRating, nil
	case SortByCreatedAt:
		return SortByCreatedAt, nil
	default:
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 정렬 기준입니다: '%s' (name, price, rating, createdAt 중 하나)", s)
	}
}

// Filter 상품 조회 조건입니다.
//
// 문자열 조건은 대소문자를 구분하지 않는 부분 일치로 비교하고, 가격 범위는 양 끝을 포함합니다.
type Filter struct {
	// Category 카테고리 또는 상품 유형의 부분 문자열
	Category string
	Brand    string
	Fit      string

	// Search 상품명, 브랜드, 색상, 소재에 대한 자유 텍스트 검색어
	Search string

	MinPrice *float64
	MaxPrice *float64

	SortBy     SortField
	Descending bool

	// Limit 0이면 제한 없음
	Limit int
}

// Validate 가격 범위가 올바른지 검사합니다. 잘못된 범위는 보정하지 않고 에러로 거부합니다.
func (f Filter) Validate() error {
	if f.MinPrice != nil && !finite(*f.MinPrice) {
		return apperrors.Newf(apperrors.InvalidInput, "최소 가격이 유한한 숫자가 아닙니다: %v", *f.MinPrice)
	}
	if f.MaxPrice != nil && !finite(*f.MaxPrice) {
		return apperrors.Newf(apperrors.InvalidInput, "최대 가격이 유한한 숫자가 아닙니다: %v", *f.MaxPrice)
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return apperrors.Newf(apperrors.InvalidInput, "최소 가격은 음수일 수 없습니다: %v", *f.MinPrice)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return apperrors.Newf(apperrors.InvalidInput, "최대 가격은 음수일 수 없습니다: %v", *f.MaxPrice)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return apperrors.Newf(apperrors.InvalidInput, "최소 가격(%v)이 최대 가격(%v)보다 클 수 없습니다", *f.MinPrice, *f.MaxPrice)
	}
	if f.Limit < 0 {
		return apperrors.Newf(apperrors.InvalidInput, "조회 개수는 음수일 수 없습니다: %d", f.Limit)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Matches 상품이 조회 조건을 만족하는지 검사합니다.
func (f Filter) Matches(p *Product) bool {
	if f.Category != "" && !strutil.ContainsFold(p.Category, f.Category) && !strutil.ContainsFold(p.ProductType, f.Category) {
		return false
	}
	if f.Brand != "" && !strutil.ContainsFold(p.Brand, f.Brand) {
		return false
	}
	if f.Fit != "" && !strutil.ContainsFold(p.FitType, f.Fit) {
		return false
	}
	if f.Search != "" {
		matched := false
		for _, field := range []string{p.Title, p.Brand, p.PrimaryColor, p.MaterialType} {
			if strutil.ContainsFold(field, f.Search) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		if !p.HasPrice() {
			return false
		}
		price := p.EffectivePrice()
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}

	return true
}

// Apply 조건에 맞는 상품을 정렬하고 Limit만큼 잘라 반환합니다. 입력 슬라이스는 변경하지 않습니다.
func (f Filter) Apply(products []*Product) []*Product {
	matched := make([]*Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}

	SortProducts(matched, f.SortBy, f.Descending)

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched
}

// SortProducts 상품을 지정된 기준으로 안정 정렬합니다. 가격이 없는 상품은 가격순 정렬에서 항상 뒤로 보낸다.
func SortProducts(products []*Product, field SortField, descending bool) {
	less := func(a, b *Product) bool {
		switch field {
		case SortByName:
			return strutil.Fold(a.Title) < strutil.Fold(b.Title)
		case SortByRating:
			return a.Rating < b.Rating
		case SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.EffectivePrice() < b.EffectivePrice()
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if field == SortByPrice || field == "" {
			if a.HasPrice() != b.HasPrice() {
				return a.HasPrice()
			}
		}
		if descending {
			return less(b, a)
		}
		return less(a, b)
	})
}
