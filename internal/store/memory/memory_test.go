package memory

import (
	"context"
	"testing"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/prediction"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, s *Store) {
	t.Helper()

	products := []*catalog.Product{
		{ID: "p1", Title: "Crew T-Shirt", Brand: "Outfitters", Category: "men", Price: catalog.Float(1299), OriginalPrice: catalog.Float(1599), IsDiscounted: true},
		{ID: "p2", Title: "Crew T-Shirt", Brand: "Cougar", Category: "men", Price: catalog.Float(999)},
		{ID: "p3", Title: "Slim Chino", Brand: "Breakout", Category: "men", Price: catalog.Float(2499), OriginalPrice: catalog.Float(4999), Availability: catalog.Bool(false)},
		{ID: "p4", Title: "Denim Jacket", Brand: "Outfitters", Category: "women", Price: catalog.Float(5999), DiscountPercent: catalog.Float(40), IsDiscounted: true},
		{ID: "p5", Title: "Linen Shirt", Brand: "Engine", Category: "men"},
	}
	for _, p := range products {
		require.NoError(t, s.Products().Upsert(context.Background(), p))
	}
}

func productIDs(products []*catalog.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestProductStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()
	seedProducts(t, s)

	t.Run("FindProducts 가격순 조회", func(t *testing.T) {
		products, err := s.Products().FindProducts(ctx, catalog.Filter{Category: "men", SortBy: catalog.SortByPrice})
		require.NoError(t, err)
		// women도 부분 일치로 포함된다
		assert.Equal(t, []string{"p2", "p1", "p3", "p4", "p5"}, productIDs(products), "가격이 없는 상품은 마지막")
	})

	t.Run("FindProducts 잘못된 필터", func(t *testing.T) {
		_, err := s.Products().FindProducts(ctx, catalog.Filter{MinPrice: catalog.Float(10), MaxPrice: catalog.Float(1)})
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("Get 없는 상품", func(t *testing.T) {
		_, err := s.Products().Get(ctx, "nope")
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("반환 값은 복사본", func(t *testing.T) {
		p, err := s.Products().Get(ctx, "p1")
		require.NoError(t, err)
		p.Title = "changed"

		again, err := s.Products().Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Crew T-Shirt", again.Title)
	})

	t.Run("GetMany 요청 순서 유지", func(t *testing.T) {
		products, err := s.Products().GetMany(ctx, []string{"p4", "nope", "p1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"p4", "p1"}, productIDs(products))
	})

	t.Run("Featured", func(t *testing.T) {
		products, err := s.Products().Featured(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"p4", "p1"}, productIDs(products), "재고 없는 p3 제외, 할인율 내림차순")
	})

	t.Run("TopDiscounts", func(t *testing.T) {
		products, err := s.Products().TopDiscounts(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"p4"}, productIDs(products))
	})

	t.Run("SimilarTo", func(t *testing.T) {
		products, err := s.Products().SimilarTo(ctx, "p1", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "p3", "p5"}, productIDs(products))

		_, err = s.Products().SimilarTo(ctx, "nope", 0)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})
}

func TestProductStore_Upsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()

	p := &catalog.Product{Title: "Polo", Category: "men", Price: catalog.Float(100)}
	require.NoError(t, s.Products().Upsert(ctx, p))
	require.NotEmpty(t, p.ID, "ID가 없으면 새로 발급해야 합니다")
	createdAt := p.CreatedAt

	time.Sleep(time.Millisecond)
	update := &catalog.Product{ID: p.ID, Title: "Polo", Category: "men", Price: catalog.Float(90)}
	require.NoError(t, s.Products().Upsert(ctx, update))

	got, err := s.Products().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, got.EffectivePrice())
	assert.Equal(t, createdAt, got.CreatedAt, "생성 시각은 유지되어야 합니다")
	assert.True(t, got.UpdatedAt.After(createdAt))

	all, err := s.Products().FindProducts(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWishlistStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := New().Wishlist()

	require.NoError(t, w.Add(ctx, &store.WishlistItem{UserID: "u1", ProductID: "p1"}))
	require.NoError(t, w.Add(ctx, &store.WishlistItem{UserID: "u1", ProductID: "p2"}))
	require.NoError(t, w.Add(ctx, &store.WishlistItem{UserID: "u2", ProductID: "p1"}))

	err := w.Add(ctx, &store.WishlistItem{UserID: "u1", ProductID: "p1"})
	assert.True(t, apperrors.Is(err, apperrors.Conflict))

	require.NoError(t, w.SetTracking(ctx, "u1", "p2", true))
	assert.True(t, apperrors.Is(w.SetTracking(ctx, "u1", "p9", true), apperrors.NotFound))

	items, err := w.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.False(t, items[0].TrackPrice)
	assert.True(t, items[1].TrackPrice)
	assert.NotEmpty(t, items[0].ID)
	assert.False(t, items[0].AddedAt.IsZero())

	require.NoError(t, w.Remove(ctx, "u1", "p1"))
	assert.True(t, apperrors.Is(w.Remove(ctx, "u1", "p1"), apperrors.NotFound))

	items, err = w.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	others, err := w.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 1, "다른 사용자의 위시리스트는 영향이 없어야 합니다")
}

func TestTrackerStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := New().Tracker()

	item := &store.TrackedProduct{UserID: "u1", ProductID: "p1", ProductName: "Polo", LastPrice: 1000}
	require.NoError(t, tr.Track(ctx, item))
	require.NotEmpty(t, item.ID)

	assert.True(t, apperrors.Is(tr.Track(ctx, &store.TrackedProduct{UserID: "u1", ProductID: "p1"}), apperrors.Conflict))
	require.NoError(t, tr.Track(ctx, &store.TrackedProduct{UserID: "u2", ProductID: "p1", LastPrice: 1000}))

	checkedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, tr.UpdatePrice(ctx, item.ID, 900, checkedAt, &checkedAt))
	assert.True(t, apperrors.Is(tr.UpdatePrice(ctx, "nope", 1, checkedAt, nil), apperrors.NotFound))

	mine, err := tr.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 900.0, mine[0].LastPrice)
	assert.Equal(t, checkedAt, mine[0].LastChecked)
	require.NotNil(t, mine[0].LastNotified)
	assert.Equal(t, checkedAt, *mine[0].LastNotified)

	all, err := tr.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, tr.Untrack(ctx, "u1", "p1"))
	assert.True(t, apperrors.Is(tr.Untrack(ctx, "u1", "p1"), apperrors.NotFound))
}

func TestPredictionStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ps := New().Predictions()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	later := &prediction.Prediction{UserID: "u1", ProductID: "p1", Status: prediction.StatusActive, TargetDate: now.AddDate(0, 0, 30)}
	sooner := &prediction.Prediction{UserID: "u1", ProductID: "p2", Status: prediction.StatusActive, TargetDate: now.AddDate(0, 0, 7)}
	past := &prediction.Prediction{UserID: "u1", ProductID: "p3", Status: prediction.StatusActive, TargetDate: now.AddDate(0, 0, -1)}
	other := &prediction.Prediction{UserID: "u2", ProductID: "p1", Status: prediction.StatusActive, TargetDate: now.AddDate(0, 0, 1)}

	for _, p := range []*prediction.Prediction{later, sooner, past, other} {
		require.NoError(t, ps.Save(ctx, p))
		require.NotEmpty(t, p.ID)
	}

	active, err := ps.ListActive(ctx, "u1", now)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, sooner.ID, active[0].ID, "목표 날짜 오름차순")
	assert.Equal(t, later.ID, active[1].ID)

	expired, err := ps.ExpireBefore(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	got, err := ps.Get(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, prediction.StatusExpired, got.Status)

	_, err = ps.Get(ctx, "nope")
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestPriceHistoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := New().PriceHistory()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 40; i++ {
		require.NoError(t, h.Append(ctx, store.PriceHistoryEntry{ProductID: "p1", Price: float64(1000 + i), RecordedAt: base.AddDate(0, 0, i)}))
	}
	require.NoError(t, h.Append(ctx, store.PriceHistoryEntry{ProductID: "p1", Price: 1, RecordedAt: base.AddDate(0, 0, -1)}))

	recent, err := h.Recent(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, recent, store.DefaultPriceHistoryLimit)
	assert.Equal(t, 1010.0, recent[0].Price)
	assert.Equal(t, 1039.0, recent[len(recent)-1].Price)
	assert.Equal(t, "website", recent[0].Source)

	empty, err := h.Recent(ctx, "nope", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestComparisonStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New().Comparisons()

	for i := 0; i < 12; i++ {
		require.NoError(t, c.Save(ctx, &store.SavedComparison{UserID: "u1", Name: string(rune('a' + i)), ProductIDs: []string{"p1", "p2"}}))
	}
	require.NoError(t, c.Save(ctx, &store.SavedComparison{UserID: "u2", Name: "other"}))

	history, err := c.History(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, store.DefaultComparisonHistoryLimit)
	assert.Equal(t, "l", history[0].Name, "최근 저장한 순서")
	assert.Equal(t, []string{"p1", "p2"}, history[0].ProductIDs)
}
