// Package response v1 API의 응답 데이터 모델을 정의합니다.
package response

import (
	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/importer"
	"github.com/darkkaiser/pricewise-server/internal/store"
)

// SimilarProductsResponse 유사 상품 비교 응답
type SimilarProductsResponse struct {
	MainProduct     catalog.View   `json:"main_product"`
	SimilarProducts []catalog.View `json:"similar_products"`
	ComparisonCount int            `json:"comparison_count"`
}

// ProductComparisonResponse 여러 상품을 나란히 비교한 응답
type ProductComparisonResponse struct {
	Products []catalog.View `json:"products"`

	// CheapestProductID 가격 정보가 있는 상품 중 실제 가격이 가장 낮은 상품
	CheapestProductID string `json:"cheapest_product_id,omitempty"`

	// BestDiscountProductID 할인율이 가장 높은 상품
	BestDiscountProductID string `json:"best_discount_product_id,omitempty"`

	// PriceSpread 가격 정보가 있는 상품들의 최고가와 최저가 차이
	PriceSpread float64 `json:"price_spread"`
}

// WishlistEntry 위시리스트 항목과 상품 정보. 상품이 카탈로그에서 사라졌으면 Product는 nil입니다.
type WishlistEntry struct {
	*store.WishlistItem
	Product *catalog.View `json:"product"`
}

// TrackingToggleResponse 위시리스트 가격 추적 전환 결과
type TrackingToggleResponse struct {
	ProductID  string `json:"product_id"`
	TrackPrice bool   `json:"track_price"`
}

// ImportResponse 카탈로그 수집 결과
type ImportResponse struct {
	Results []importer.Result `json:"results"`
	Failed  int               `json:"failed"`
}
