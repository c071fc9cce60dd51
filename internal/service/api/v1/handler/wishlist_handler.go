package handler

import (
	"net/http"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/response"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/labstack/echo/v4"
)

// ListWishlistHandler godoc
// @Summary 위시리스트 조회
// @Description 담은 항목과 상품 정보를 함께 반환합니다.
// @Tags Wishlist
// @Produce json
// @Success 200 {object} response.DataResponse{data=[]response.WishlistEntry}
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Security BearerAuth
// @Router /api/v1/wishlist [get]
func (h *Handler) ListWishlistHandler(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.wishlist.List(ctx, auth.MustGetUser(c).ID)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := h.products.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	entries := make([]response.WishlistEntry, 0, len(items))
	for _, item := range items {
		entry := response.WishlistEntry{WishlistItem: item}
		if p, ok := byID[item.ProductID]; ok {
			view := catalog.NewView(p)
			entry.Product = &view
		}
		entries = append(entries, entry)
	}

	return httputil.Data(c, entries)
}

// AddWishlistHandler godoc
// @Summary 위시리스트에 추가
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param body body request.AddWishlistRequest true "추가할 상품"
// @Success 201 {object} response.DataResponse{data=store.WishlistItem}
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Failure 409 {object} response.ErrorResponse "이미 담긴 상품"
// @Security BearerAuth
// @Router /api/v1/wishlist [post]
func (h *Handler) AddWishlistHandler(c echo.Context) error {
	req := new(request.AddWishlistRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.products.Get(ctx, req.ProductID); err != nil {
		return err
	}

	item := &store.WishlistItem{
		UserID:      auth.MustGetUser(c).ID,
		ProductID:   req.ProductID,
		TargetPrice: req.TargetPrice,
		AddedAt:     h.now(),
	}
	if err := h.wishlist.Add(ctx, item); err != nil {
		return err
	}

	return httputil.DataWithStatus(c, http.StatusCreated, item)
}

// RemoveWishlistHandler godoc
// @Summary 위시리스트에서 삭제
// @Tags Wishlist
// @Produce json
// @Param productId path string true "상품 ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse "위시리스트에 없는 상품"
// @Security BearerAuth
// @Router /api/v1/wishlist/{productId} [delete]
func (h *Handler) RemoveWishlistHandler(c echo.Context) error {
	if err := h.wishlist.Remove(c.Request().Context(), auth.MustGetUser(c).ID, c.Param("productId")); err != nil {
		return err
	}
	return httputil.Success(c)
}

// ToggleWishlistTrackingHandler godoc
// @Summary 위시리스트 가격 추적 전환
// @Description 위시리스트 항목의 가격 추적 여부를 반대로 바꿉니다.
// @Tags Wishlist
// @Produce json
// @Param productId path string true "상품 ID"
// @Success 200 {object} response.DataResponse{data=response.TrackingToggleResponse}
// @Failure 404 {object} response.ErrorResponse "위시리스트에 없는 상품"
// @Security BearerAuth
// @Router /api/v1/wishlist/{productId}/track [patch]
func (h *Handler) ToggleWishlistTrackingHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.MustGetUser(c).ID
	productID := c.Param("productId")

	items, err := h.wishlist.List(ctx, userID)
	if err != nil {
		return err
	}

	var current *store.WishlistItem
	for _, item := range items {
		if item.ProductID == productID {
			current = item
			break
		}
	}
	if current == nil {
		return store.NewErrNotInWishlist(productID)
	}

	track := !current.TrackPrice
	if err := h.wishlist.SetTracking(ctx, userID, productID, track); err != nil {
		return err
	}

	return httputil.Data(c, response.TrackingToggleResponse{
		ProductID:  productID,
		TrackPrice: track,
	})
}
