package comparison

import (
	"github.com/darkkaiser/pricewise-server/internal/catalog"
)

const (
	// DefaultLimit 조회 개수를 지정하지 않았을 때의 후보 레코드 수
	DefaultLimit = 50

	// DefaultMaxLimit 그룹핑 전에 적용하는 후보 레코드 수 상한 기본값
	DefaultMaxLimit = 500
)

// Criteria 가격 비교 요청 조건입니다.
type Criteria struct {
	Category string
	Brand    string
	Fit      string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Limit    int

	// 빈 값이면 서비스 기본값을 사용한다
	Sort        SortPolicy
	Granularity Granularity
}

// Validate 가격 범위 조건을 검사합니다. 잘못된 조건은 조회 전에 거부됩니다.
func (c Criteria) Validate() error {
	if err := c.filter(0).Validate(); err != nil {
		return newErrInvalidFilter(err)
	}
	return nil
}

// filter 저장소 조회 조건으로 변환합니다. 후보 레코드는 항상 실제 가격 오름차순입니다.
func (c Criteria) filter(limit int) catalog.Filter {
	return catalog.Filter{
		Category: c.Category,
		Brand:    c.Brand,
		Fit:      c.Fit,
		Search:   c.Search,
		MinPrice: c.MinPrice,
		MaxPrice: c.MaxPrice,
		SortBy:   catalog.SortByPrice,
		Limit:    limit,
	}
}

// effectiveLimit 0이면 기본값, 상한을 넘으면 상한으로 맞춘다.
func effectiveLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
