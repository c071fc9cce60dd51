package handler

import (
	"strconv"
	"strings"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/comparison"
	apihandler "github.com/darkkaiser/pricewise-server/internal/service/api/handler"
	"github.com/labstack/echo/v4"
)

const (
	// defaultProductsLimit 상품 목록 기본 조회 개수
	defaultProductsLimit = 12

	// maxProductsLimit 상품 목록 최대 조회 개수
	maxProductsLimit = 100

	// defaultPredictionDays 예측 목표 일수 기본값
	defaultPredictionDays = 30
)

// bindAndValidate 요청 본문을 바인딩하고 검증합니다.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	return apihandler.ValidateRequest(req)
}

// queryFloat 파라미터가 없으면 nil을 반환합니다.
func queryFloat(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, NewErrInvalidQueryParam(name, raw, "숫자")
	}
	return &v, nil
}

// queryInt 파라미터가 없으면 def를 반환합니다. 음수는 허용하지 않습니다.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, NewErrInvalidQueryParam(name, raw, "0 이상의 정수")
	}
	return v, nil
}

// queryBool 파라미터가 없으면 false를 반환합니다.
func queryBool(c echo.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, NewErrInvalidQueryParam(name, raw, "true 또는 false")
	}
	return v, nil
}

// criteriaFromQuery 가격 비교 쿼리 파라미터를 Criteria로 변환합니다.
func criteriaFromQuery(c echo.Context) (comparison.Criteria, error) {
	var criteria comparison.Criteria
	var err error

	if criteria.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return criteria, err
	}
	if criteria.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return criteria, err
	}
	if criteria.Limit, err = queryInt(c, "limit", 0); err != nil {
		return criteria, err
	}
	if criteria.Sort, err = comparison.ParseSortPolicy(c.QueryParam("sort")); err != nil {
		return criteria, err
	}
	if criteria.Granularity, err = comparison.ParseGranularity(c.QueryParam("granularity")); err != nil {
		return criteria, err
	}

	criteria.Category = strings.TrimSpace(c.QueryParam("category"))
	criteria.Brand = strings.TrimSpace(c.QueryParam("brand"))
	criteria.Fit = strings.TrimSpace(c.QueryParam("fit"))
	criteria.Search = strings.TrimSpace(c.QueryParam("search"))

	return criteria, nil
}

// productFilterFromQuery 상품 목록 쿼리 파라미터를 catalog.Filter로 변환합니다.
func productFilterFromQuery(c echo.Context) (catalog.Filter, error) {
	var filter catalog.Filter
	var err error

	if filter.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return filter, err
	}
	if filter.SortBy, err = catalog.ParseSortField(c.QueryParam("sort_by")); err != nil {
		return filter, err
	}
	if filter.Descending, err = queryBool(c, "desc"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(c, "limit", defaultProductsLimit); err != nil {
		return filter, err
	}
	if filter.Limit == 0 {
		filter.Limit = defaultProductsLimit
	}
	if filter.Limit > maxProductsLimit {
		filter.Limit = maxProductsLimit
	}

	filter.Category = strings.TrimSpace(c.QueryParam("category"))
	filter.Brand = strings.TrimSpace(c.QueryParam("brand"))
	filter.Fit = strings.TrimSpace(c.QueryParam("fit"))
	filter.Search = strings.TrimSpace(c.QueryParam("search"))

	return filter, filter.Validate()
}
