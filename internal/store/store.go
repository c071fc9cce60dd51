// Package store 상품 카탈로그와 사용자 데이터(위시리스트, 가격 추적, 예측, 저장된 비교)의 영속성 계층을 정의합니다.
//
// 구현체:
//   - memory: 프로세스 내 저장소 (테스트, storage.driver=memory)
//   - postgres: database/sql + lib/pq
package store

import (
	"context"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/prediction"
)

const (
	// MaxCompareProducts 한 번에 나란히 비교할 수 있는 최대 상품 수
	MaxCompareProducts = 5

	// DefaultFeaturedLimit 추천 상품 기본 개수
	DefaultFeaturedLimit = 8

	// DefaultTopDiscountsLimit 할인율 상위 상품 기본 개수
	DefaultTopDiscountsLimit = 10

	// DefaultSimilarLimit 유사 상품 기본 개수
	DefaultSimilarLimit = 10

	// DefaultPriceHistoryLimit 가격 이력 조회 기본 개수
	DefaultPriceHistoryLimit = 30

	// DefaultComparisonHistoryLimit 저장된 비교 조회 기본 개수
	DefaultComparisonHistoryLimit = 10
)

// Store 모든 저장소를 묶은 진입점입니다.
type Store interface {
	Products() ProductStore
	Wishlist() WishlistStore
	Tracker() TrackerStore
	Predictions() PredictionStore
	PriceHistory() PriceHistoryStore
	Comparisons() ComparisonStore

	Close() error
}

// ProductStore 상품 카탈로그 저장소입니다. comparison.ProductSource를 만족합니다.
type ProductStore interface {
	// FindProducts 필터 조건에 맞는 상품을 filter.SortBy 순서로 최대 filter.Limit개 반환합니다.
	FindProducts(ctx context.Context, filter catalog.Filter) ([]*catalog.Product, error)

	// Get 상품이 없으면 NotFound 에러를 반환합니다.
	Get(ctx context.Context, id string) (*catalog.Product, error)

	// GetMany 요청한 ID 순서대로 상품을 반환합니다. 없는 ID는 건너뜁니다.
	GetMany(ctx context.Context, ids []string) ([]*catalog.Product, error)

	// Upsert ID가 비어 있으면 새 ID를 발급합니다.
	Upsert(ctx context.Context, p *catalog.Product) error

	// Featured 재고가 있는 할인 상품을 할인율 내림차순으로 반환합니다.
	Featured(ctx context.Context, limit int) ([]*catalog.Product, error)

	// TopDiscounts 재고가 있고 할인율이 0보다 큰 상품을 할인율 내림차순으로 반환합니다.
	TopDiscounts(ctx context.Context, limit int) ([]*catalog.Product, error)

	// SimilarTo 같은 카테고리의 다른 상품을 가격 오름차순으로 반환합니다.
	SimilarTo(ctx context.Context, id string, limit int) ([]*catalog.Product, error)
}

// WishlistItem 사용자 위시리스트 항목
type WishlistItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProductID   string    `json:"product_id"`
	TrackPrice  bool      `json:"track_price"`
	TargetPrice *float64  `json:"target_price,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// WishlistStore 위시리스트 저장소
type WishlistStore interface {
	List(ctx context.Context, userID string) ([]*WishlistItem, error)

	// Add 이미 담긴 상품이면 Conflict 에러를 반환합니다.
	Add(ctx context.Context, item *WishlistItem) error

	// Remove 항목이 없으면 NotFound 에러를 반환합니다.
	Remove(ctx context.Context, userID, productID string) error

	SetTracking(ctx context.Context, userID, productID string, track bool) error
}

// TrackedProduct 사용자가 가격을 추적하는 상품
type TrackedProduct struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	ProductID    string     `json:"product_id"`
	ProductName  string     `json:"product_name"`
	ImageURL     string     `json:"image_url,omitempty"`
	LastPrice    float64    `json:"last_price"`
	TargetPrice  *float64   `json:"target_price,omitempty"`
	LastChecked  time.Time  `json:"last_checked"`
	LastNotified *time.Time `json:"last_notified,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TrackerStore 가격 추적 저장소
type TrackerStore interface {
	// Track 같은 사용자가 같은 상품을 이미 추적 중이면 Conflict 에러를 반환합니다.
	Track(ctx context.Context, t *TrackedProduct) error

	// Untrack 추적 중이 아니면 NotFound 에러를 반환합니다.
	Untrack(ctx context.Context, userID, productID string) error

	List(ctx context.Context, userID string) ([]*TrackedProduct, error)
	ListAll(ctx context.Context) ([]*TrackedProduct, error)

	// UpdatePrice 마지막 확인 가격과 시각을 갱신합니다. notifiedAt이 nil이 아니면 마지막 알림 시각도 갱신합니다.
	UpdatePrice(ctx context.Context, id string, price float64, checkedAt time.Time, notifiedAt *time.Time) error
}

// PredictionStore 가격 예측 저장소
type PredictionStore interface {
	// Save ID가 비어 있으면 새 ID를 발급합니다. 같은 ID가 있으면 덮어씁니다.
	Save(ctx context.Context, p *prediction.Prediction) error

	Get(ctx context.Context, id string) (*prediction.Prediction, error)

	// ListActive 목표 날짜가 지나지 않은 진행 중 예측을 목표 날짜 오름차순으로 반환합니다.
	ListActive(ctx context.Context, userID string, now time.Time) ([]*prediction.Prediction, error)

	// ExpireBefore 목표 날짜가 now 이전인 진행 중 예측을 만료 상태로 바꾸고 바뀐 개수를 반환합니다.
	ExpireBefore(ctx context.Context, now time.Time) (int, error)
}

// PriceHistoryEntry 상품의 가격 기록
type PriceHistoryEntry struct {
	ProductID  string    `json:"product_id"`
	Price      float64   `json:"price"`
	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recorded_at"`
}

// PriceHistoryStore 가격 이력 저장소
type PriceHistoryStore interface {
	Append(ctx context.Context, e PriceHistoryEntry) error

	// Recent 최근 limit개의 기록을 시간 오름차순으로 반환합니다.
	Recent(ctx context.Context, productID string, limit int) ([]PriceHistoryEntry, error)
}

// SavedComparison 사용자가 저장한 상품 비교
type SavedComparison struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	ProductIDs []string  `json:"product_ids"`
	SavedAt    time.Time `json:"saved_at"`
}

// ComparisonStore 저장된 비교 저장소
type ComparisonStore interface {
	Save(ctx context.Context, c *SavedComparison) error

	// History 최근 저장한 순서로 최대 limit개를 반환합니다.
	History(ctx context.Context, userID string, limit int) ([]*SavedComparison, error)
}

// ClampLimit limit가 0 이하이면 기본값을 사용합니다.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
