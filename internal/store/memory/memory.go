// Package memory 프로세스 메모리에 데이터를 보관하는 store 구현체입니다.
//
// 모든 저장소는 sync.RWMutex로 보호되며, 반환하는 값은 내부 상태와 공유되지 않는 복사본입니다.
package memory

import (
	"context"

	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/google/uuid"
)

// Store store.Store의 메모리 구현체
type Store struct {
	products     *productStore
	wishlist     *wishlistStore
	tracker      *trackerStore
	predictions  *predictionStore
	priceHistory *priceHistoryStore
	comparisons  *comparisonStore
}

// 컴파일 타임 인터페이스 구현 검증
var _ store.Store = (*Store)(nil)

// New 비어 있는 메모리 저장소를 생성합니다.
func New() *Store {
	return &Store{
		products:     newProductStore(),
		wishlist:     newWishlistStore(),
		tracker:      newTrackerStore(),
		predictions:  newPredictionStore(),
		priceHistory: newPriceHistoryStore(),
		comparisons:  newComparisonStore(),
	}
}

func (s *Store) Products() store.ProductStore          { return s.products }
func (s *Store) Wishlist() store.WishlistStore         { return s.wishlist }
func (s *Store) Tracker() store.TrackerStore           { return s.tracker }
func (s *Store) Predictions() store.PredictionStore    { return s.predictions }
func (s *Store) PriceHistory() store.PriceHistoryStore { return s.priceHistory }
func (s *Store) Comparisons() store.ComparisonStore    { return s.comparisons }

func (s *Store) Health(context.Context) error {
	return nil
}

// Close 메모리 저장소는 해제할 자원이 없습니다.
func (s *Store) Close() error {
	return nil
}

func newID() string {
	return uuid.NewString()
}
