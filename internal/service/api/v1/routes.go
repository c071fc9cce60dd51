// Package v1 /api/v1 경로 하위의 라우트를 정의합니다.
//
// 카탈로그 조회와 가격 비교는 인증 없이 사용할 수 있고,
// 사용자별 데이터(위시리스트, 가격 추적, 저장한 비교, 스타일 추천)는 Bearer 토큰 인증이 필요합니다.
// 상품 등록과 카탈로그 수집은 관리자만 사용할 수 있습니다.
package v1

import (
	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/middleware"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 설정합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, authenticator *auth.Authenticator) {
	v1Group := e.Group("/api/v1")

	requireAuth := middleware.RequireAuthentication(authenticator)
	requireAdmin := middleware.RequireAdmin()

	// 가격 비교
	comparisonGroup := v1Group.Group("/comparison")
	comparisonGroup.GET("", h.CompareHandler)
	comparisonGroup.GET("/export", h.ExportComparisonHandler)
	comparisonGroup.GET("/products", h.CompareProductsHandler)
	comparisonGroup.GET("/saved", h.ComparisonHistoryHandler, requireAuth)
	comparisonGroup.POST("/saved", h.SaveComparisonHandler, requireAuth)
	comparisonGroup.GET("/:productId/similar", h.SimilarProductsHandler)
	comparisonGroup.GET("/:productId/price-history", h.PriceHistoryHandler)

	// 상품
	productsGroup := v1Group.Group("/products")
	productsGroup.GET("", h.ListProductsHandler)
	productsGroup.GET("/featured", h.FeaturedProductsHandler)
	productsGroup.GET("/top-discounts", h.TopDiscountsHandler)
	productsGroup.GET("/:id", h.GetProductHandler)
	productsGroup.POST("", h.CreateProductHandler, requireAuth, requireAdmin)

	// 위시리스트
	wishlistGroup := v1Group.Group("/wishlist", requireAuth)
	wishlistGroup.GET("", h.ListWishlistHandler)
	wishlistGroup.POST("", h.AddWishlistHandler)
	wishlistGroup.DELETE("/:productId", h.RemoveWishlistHandler)
	wishlistGroup.PATCH("/:productId/track", h.ToggleWishlistTrackingHandler)

	// 가격 추적과 예측
	trackerGroup := v1Group.Group("/tracker", requireAuth)
	trackerGroup.GET("", h.ListTrackedHandler)
	trackerGroup.POST("", h.TrackProductHandler)
	trackerGroup.DELETE("/:productId", h.UntrackProductHandler)
	trackerGroup.GET("/predict/:productId", h.PredictPriceHandler)
	trackerGroup.GET("/predictions/active", h.ActivePredictionsHandler)
	trackerGroup.PUT("/predictions/:predictionId/accuracy", h.PredictionAccuracyHandler)

	// 스타일 추천
	v1Group.POST("/advisor/:kind", h.AdvisorHandler, requireAuth)

	// 관리자
	adminGroup := v1Group.Group("/admin", requireAuth, requireAdmin)
	adminGroup.POST("/import", h.ImportCatalogHandler)
}
