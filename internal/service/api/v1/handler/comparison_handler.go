package handler

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/export"
	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/response"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/darkkaiser/pricewise-server/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// CompareHandler godoc
// @Summary 브랜드 간 가격 비교
// @Description 조건에 맞는 상품을 같은 상품끼리 묶어 브랜드별 가격을 비교하고 집계 통계를 반환합니다.
// @Description 조건에 맞는 상품이 없으면 groups와 available_brands는 빈 배열, stats는 null입니다.
// @Tags Comparison
// @Produce json
// @Param category query string false "카테고리 (부분 일치)"
// @Param brand query string false "브랜드 (부분 일치)"
// @Param fit query string false "핏 (부분 일치)"
// @Param search query string false "상품명, 브랜드, 색상, 소재 검색어"
// @Param min_price query number false "최소 가격 (포함)"
// @Param max_price query number false "최대 가격 (포함)"
// @Param limit query int false "그룹핑 전 후보 상품 수"
// @Param sort query string false "그룹 정렬 기준" Enums(offers, price)
// @Param granularity query string false "그룹핑 단위" Enums(coarse, fine)
// @Success 200 {object} response.DataResponse{data=comparison.Result}
// @Failure 400 {object} response.ErrorResponse "잘못된 필터 조건"
// @Router /api/v1/comparison [get]
func (h *Handler) CompareHandler(c echo.Context) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.comparison.Compare(c.Request().Context(), criteria)
	if err != nil {
		return err
	}

	return httputil.Data(c, result)
}

// ExportComparisonHandler godoc
// @Summary 가격 비교 결과 XLSX 내보내기
// @Description CompareHandler와 같은 조건으로 비교한 결과를 Groups, Stats 두 시트의 XLSX 파일로 내려줍니다.
// @Tags Comparison
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param category query string false "카테고리 (부분 일치)"
// @Param brand query string false "브랜드 (부분 일치)"
// @Param min_price query number false "최소 가격 (포함)"
// @Param max_price query number false "최대 가격 (포함)"
// @Param sort query string false "그룹 정렬 기준" Enums(offers, price)
// @Param granularity query string false "그룹핑 단위" Enums(coarse, fine)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorResponse "잘못된 필터 조건"
// @Router /api/v1/comparison/export [get]
func (h *Handler) ExportComparisonHandler(c echo.Context) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.comparison.Compare(c.Request().Context(), criteria)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteComparison(&buf, result); err != nil {
		return err
	}

	filename := fmt.Sprintf("price-comparison-%s.xlsx", h.now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}

// CompareProductsHandler godoc
// @Summary 여러 상품 나란히 비교
// @Description 쉼표로 구분한 최대 5개의 상품을 요청한 순서대로 비교합니다. 없는 ID는 건너뜁니다.
// @Tags Comparison
// @Produce json
// @Param ids query string true "상품 ID 목록 (쉼표 구분)" example(p1,p2,p3)
// @Success 200 {object} response.DataResponse{data=response.ProductComparisonResponse}
// @Failure 400 {object} response.ErrorResponse "ID 누락 또는 개수 초과"
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Router /api/v1/comparison/products [get]
func (h *Handler) CompareProductsHandler(c echo.Context) error {
	ids := strutil.SplitAndTrim(c.QueryParam("ids"), ",")
	if len(ids) == 0 {
		return NewErrProductIDsRequired()
	}
	if len(ids) > store.MaxCompareProducts {
		return NewErrTooManyProducts(len(ids))
	}

	products, err := h.products.GetMany(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return NewErrNoProductsFound()
	}

	return httputil.Data(c, summarizeProducts(products))
}

// summarizeProducts 가격 정보가 있는 상품만으로 최저가와 가격 차이를 계산합니다.
func summarizeProducts(products []*catalog.Product) response.ProductComparisonResponse {
	res := response.ProductComparisonResponse{
		Products: catalog.NewViews(products),
	}

	lowest, highest := math.Inf(1), 0.0
	bestDiscount := 0.0
	for _, p := range products {
		if d := p.Discount(); d > bestDiscount {
			bestDiscount = d
			res.BestDiscountProductID = p.ID
		}
		if !p.HasPrice() {
			continue
		}

		price := p.EffectivePrice()
		if price < lowest {
			lowest = price
			res.CheapestProductID = p.ID
		}
		highest = math.Max(highest, price)
	}
	if res.CheapestProductID != "" {
		res.PriceSpread = highest - lowest
	}

	return res
}

// SimilarProductsHandler godoc
// @Summary 유사 상품 비교
// @Description 같은 카테고리의 다른 상품을 가격 오름차순으로 반환합니다.
// @Tags Comparison
// @Produce json
// @Param productId path string true "상품 ID"
// @Param limit query int false "최대 개수 (기본값 10)"
// @Success 200 {object} response.DataResponse{data=response.SimilarProductsResponse}
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Router /api/v1/comparison/{productId}/similar [get]
func (h *Handler) SimilarProductsHandler(c echo.Context) error {
	limit, err := queryInt(c, "limit", store.DefaultSimilarLimit)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("productId")

	product, err := h.products.Get(ctx, id)
	if err != nil {
		return err
	}
	similar, err := h.products.SimilarTo(ctx, id, limit)
	if err != nil {
		return err
	}

	return httputil.Data(c, response.SimilarProductsResponse{
		MainProduct:     catalog.NewView(product),
		SimilarProducts: catalog.NewViews(similar),
		ComparisonCount: len(similar),
	})
}

// PriceHistoryHandler godoc
// @Summary 상품 가격 이력
// @Description 상품의 최근 가격 기록을 시간 순으로 반환합니다.
// @Tags Comparison
// @Produce json
// @Param productId path string true "상품 ID"
// @Param limit query int false "최대 개수 (기본값 30)"
// @Success 200 {object} response.DataResponse{data=[]store.PriceHistoryEntry}
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Router /api/v1/comparison/{productId}/price-history [get]
func (h *Handler) PriceHistoryHandler(c echo.Context) error {
	limit, err := queryInt(c, "limit", store.DefaultPriceHistoryLimit)
	if err != nil {
		return err
	}

	entries, err := h.tracker.PriceHistory(c.Request().Context(), c.Param("productId"), limit)
	if err != nil {
		return err
	}

	return httputil.Data(c, entries)
}

// SaveComparisonHandler godoc
// @Summary 상품 비교 저장
// @Description 나란히 비교한 상품 목록을 이름과 함께 저장합니다. 이름이 없으면 저장 날짜로 만듭니다.
// @Tags Comparison
// @Accept json
// @Produce json
// @Param body body request.SaveComparisonRequest true "저장할 비교"
// @Success 201 {object} response.DataResponse{data=store.SavedComparison}
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Security BearerAuth
// @Router /api/v1/comparison/saved [post]
func (h *Handler) SaveComparisonHandler(c echo.Context) error {
	req := new(request.SaveComparisonRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	now := h.now()
	name := req.Name
	if name == "" {
		name = defaultComparisonName(now.Format("2006-01-02"))
	}

	saved := &store.SavedComparison{
		UserID:     auth.MustGetUser(c).ID,
		Name:       name,
		ProductIDs: req.ProductIDs,
		SavedAt:    now,
	}
	if err := h.comparisons.Save(c.Request().Context(), saved); err != nil {
		return err
	}

	return httputil.DataWithStatus(c, http.StatusCreated, saved)
}

// ComparisonHistoryHandler godoc
// @Summary 저장한 비교 목록
// @Description 최근 저장한 순서로 비교 목록을 반환합니다.
// @Tags Comparison
// @Produce json
// @Param limit query int false "최대 개수 (기본값 10)"
// @Success 200 {object} response.DataResponse{data=[]store.SavedComparison}
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Security BearerAuth
// @Router /api/v1/comparison/saved [get]
func (h *Handler) ComparisonHistoryHandler(c echo.Context) error {
	limit, err := queryInt(c, "limit", store.DefaultComparisonHistoryLimit)
	if err != nil {
		return err
	}

	history, err := h.comparisons.History(c.Request().Context(), auth.MustGetUser(c).ID, store.ClampLimit(limit, store.DefaultComparisonHistoryLimit))
	if err != nil {
		return err
	}

	return httputil.Data(c, history)
}
