package handler

import (
	"net/http"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/pricewise-server/internal/store"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/echo/v4"
)

const component = "api.v1.handler"

// ListProductsHandler godoc
// @Summary 상품 목록
// @Description 조건에 맞는 상품을 정렬하여 반환합니다.
// @Tags Products
// @Produce json
// @Param category query string false "카테고리 (부분 일치)"
// @Param brand query string false "브랜드 (부분 일치)"
// @Param fit query string false "핏 (부분 일치)"
// @Param search query string false "검색어"
// @Param min_price query number false "최소 가격 (포함)"
// @Param max_price query number false "최대 가격 (포함)"
// @Param sort_by query string false "정렬 기준" Enums(name, price, rating, createdAt)
// @Param desc query bool false "내림차순 여부"
// @Param limit query int false "최대 개수 (기본값 12, 최대 100)"
// @Success 200 {object} response.DataResponse{data=[]catalog.View}
// @Failure 400 {object} response.ErrorResponse "잘못된 조회 조건"
// @Router /api/v1/products [get]
func (h *Handler) ListProductsHandler(c echo.Context) error {
	filter, err := productFilterFromQuery(c)
	if err != nil {
		return err
	}

	products, err := h.products.FindProducts(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return httputil.Data(c, catalog.NewViews(products))
}

// FeaturedProductsHandler godoc
// @Summary 추천 상품
// @Description 재고가 있는 할인 상품을 할인율 순으로 반환합니다.
// @Tags Products
// @Produce json
// @Param limit query int false "최대 개수 (기본값 8)"
// @Success 200 {object} response.DataResponse{data=[]catalog.View}
// @Router /api/v1/products/featured [get]
func (h *Handler) FeaturedProductsHandler(c echo.Context) error {
	limit, err := queryInt(c, "limit", store.DefaultFeaturedLimit)
	if err != nil {
		return err
	}

	products, err := h.products.Featured(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return httputil.Data(c, catalog.NewViews(products))
}

// TopDiscountsHandler godoc
// @Summary 할인율 상위 상품
// @Tags Products
// @Produce json
// @Param limit query int false "최대 개수 (기본값 10)"
// @Success 200 {object} response.DataResponse{data=[]catalog.View}
// @Router /api/v1/products/top-discounts [get]
func (h *Handler) TopDiscountsHandler(c echo.Context) error {
	limit, err := queryInt(c, "limit", store.DefaultTopDiscountsLimit)
	if err != nil {
		return err
	}

	products, err := h.products.TopDiscounts(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return httputil.Data(c, catalog.NewViews(products))
}

// GetProductHandler godoc
// @Summary 상품 상세
// @Tags Products
// @Produce json
// @Param id path string true "상품 ID"
// @Success 200 {object} response.DataResponse{data=catalog.View}
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Router /api/v1/products/{id} [get]
func (h *Handler) GetProductHandler(c echo.Context) error {
	p, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return httputil.Data(c, catalog.NewView(p))
}

// CreateProductHandler godoc
// @Summary 상품 등록
// @Description 관리자가 상품을 직접 등록합니다.
// @Tags Products
// @Accept json
// @Produce json
// @Param body body request.CreateProductRequest true "상품 정보"
// @Success 201 {object} response.DataResponse{data=catalog.View}
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 403 {object} response.ErrorResponse "관리자 권한 없음"
// @Security BearerAuth
// @Router /api/v1/products [post]
func (h *Handler) CreateProductHandler(c echo.Context) error {
	req := new(request.CreateProductRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	p := &catalog.Product{
		Title:           req.Title,
		Brand:           req.Brand,
		Category:        req.Category,
		ProductType:     req.ProductType,
		FitType:         req.FitType,
		MaterialType:    req.MaterialType,
		PrimaryColor:    req.PrimaryColor,
		Description:     req.Description,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		DiscountPercent: req.DiscountPercent,
		ImageURL:        req.ImageURL,
		ProductURL:      req.ProductURL,
		Availability:    req.Availability,
		StockQuantity:   req.StockQuantity,
		Rating:          req.Rating,
		Tags:            req.Tags,
	}
	p.IsDiscounted = p.Discounted()

	if err := h.products.Upsert(c.Request().Context(), p); err != nil {
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"product_id": p.ID,
		"title":      p.Title,
	}).Info("상품 등록")

	return httputil.DataWithStatus(c, http.StatusCreated, catalog.NewView(p))
}
