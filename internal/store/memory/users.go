package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/prediction"
	"github.com/darkkaiser/pricewise-server/internal/store"
)

// wishlistStore 사용자별 위시리스트. 항목은 담은 순서를 유지한다.
type wishlistStore struct {
	mu    sync.RWMutex
	items map[string][]*store.WishlistItem
}

func newWishlistStore() *wishlistStore {
	return &wishlistStore{items: make(map[string][]*store.WishlistItem)}
}

func (s *wishlistStore) List(_ context.Context, userID string) ([]*store.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*store.WishlistItem, 0, len(s.items[userID]))
	for _, item := range s.items[userID] {
		c := *item
		items = append(items, &c)
	}
	return items, nil
}

func (s *wishlistStore) Add(_ context.Context, item *store.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items[item.UserID] {
		if existing.ProductID == item.ProductID {
			return store.NewErrAlreadyInWishlist(item.ProductID)
		}
	}

	if item.ID == "" {
		item.ID = newID()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	c := *item
	s.items[item.UserID] = append(s.items[item.UserID], &c)

	return nil
}

func (s *wishlistStore) Remove(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items[userID]
	for i, item := range items {
		if item.ProductID == productID {
			s.items[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return store.NewErrNotInWishlist(productID)
}

func (s *wishlistStore) SetTracking(_ context.Context, userID, productID string, track bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items[userID] {
		if item.ProductID == productID {
			item.TrackPrice = track
			return nil
		}
	}
	return store.NewErrNotInWishlist(productID)
}

type trackerStore struct {
	mu    sync.RWMutex
	items []*store.TrackedProduct
}

func newTrackerStore() *trackerStore {
	return &trackerStore{}
}

func cloneTracked(t *store.TrackedProduct) *store.TrackedProduct {
	c := *t
	if t.LastNotified != nil {
		n := *t.LastNotified
		c.LastNotified = &n
	}
	return &c
}

func (s *trackerStore) Track(_ context.Context, t *store.TrackedProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.UserID == t.UserID && existing.ProductID == t.ProductID {
			return store.NewErrAlreadyTracked(t.ProductID)
		}
	}

	now := time.Now()
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.LastChecked.IsZero() {
		t.LastChecked = now
	}

	s.items = append(s.items, cloneTracked(t))

	return nil
}

func (s *trackerStore) Untrack(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.items {
		if t.UserID == userID && t.ProductID == productID {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return nil
		}
	}
	return store.NewErrNotTracked(productID)
}

func (s *trackerStore) List(_ context.Context, userID string) ([]*store.TrackedProduct, error) {
	return s.list(func(t *store.TrackedProduct) bool { return t.UserID == userID }), nil
}

func (s *trackerStore) ListAll(_ context.Context) ([]*store.TrackedProduct, error) {
	return s.list(func(*store.TrackedProduct) bool { return true }), nil
}

func (s *trackerStore) list(keep func(t *store.TrackedProduct) bool) []*store.TrackedProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*store.TrackedProduct, 0, len(s.items))
	for _, t := range s.items {
		if keep(t) {
			items = append(items, cloneTracked(t))
		}
	}
	return items
}

func (s *trackerStore) UpdatePrice(_ context.Context, id string, price float64, checkedAt time.Time, notifiedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.items {
		if t.ID != id {
			continue
		}

		t.LastPrice = price
		t.LastChecked = checkedAt
		if notifiedAt != nil {
			n := *notifiedAt
			t.LastNotified = &n
		}
		return nil
	}
	return store.NewErrTrackedNotFound(id)
}

type predictionStore struct {
	mu    sync.RWMutex
	items map[string]*prediction.Prediction
	order []string
}

func newPredictionStore() *predictionStore {
	return &predictionStore{items: make(map[string]*prediction.Prediction)}
}

func clonePrediction(p *prediction.Prediction) *prediction.Prediction {
	c := *p
	c.Factors = append([]prediction.Factor(nil), p.Factors...)
	c.HistoricalData = append([]prediction.PricePoint(nil), p.HistoricalData...)
	return &c
}

func (s *predictionStore) Save(_ context.Context, p *prediction.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	if _, ok := s.items[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.items[p.ID] = clonePrediction(p)

	return nil
}

func (s *predictionStore) Get(_ context.Context, id string) (*prediction.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return nil, store.NewErrPredictionNotFound(id)
	}
	return clonePrediction(p), nil
}

func (s *predictionStore) ListActive(_ context.Context, userID string, now time.Time) ([]*prediction.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []*prediction.Prediction
	for _, id := range s.order {
		p := s.items[id]
		if p.Status != prediction.StatusActive || p.IsExpired(now) {
			continue
		}
		if userID != "" && p.UserID != userID {
			continue
		}
		active = append(active, clonePrediction(p))
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].TargetDate.Before(active[j].TargetDate)
	})

	return active, nil
}

func (s *predictionStore) ExpireBefore(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for _, p := range s.items {
		if p.Status == prediction.StatusActive && p.IsExpired(now) {
			p.Status = prediction.StatusExpired
			expired++
		}
	}
	return expired, nil
}

type priceHistoryStore struct {
	mu      sync.RWMutex
	entries map[string][]store.PriceHistoryEntry
}

func newPriceHistoryStore() *priceHistoryStore {
	return &priceHistoryStore{entries: make(map[string][]store.PriceHistoryEntry)}
}

func (s *priceHistoryStore) Append(_ context.Context, e store.PriceHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	if e.Source == "" {
		e.Source = "website"
	}

	entries := append(s.entries[e.ProductID], e)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt.Before(entries[j].RecordedAt)
	})
	s.entries[e.ProductID] = entries

	return nil
}

func (s *priceHistoryStore) Recent(_ context.Context, productID string, limit int) ([]store.PriceHistoryEntry, error) {
	limit = store.ClampLimit(limit, store.DefaultPriceHistoryLimit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[productID]
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return append([]store.PriceHistoryEntry{}, entries...), nil
}

type comparisonStore struct {
	mu    sync.RWMutex
	items []*store.SavedComparison
}

func newComparisonStore() *comparisonStore {
	return &comparisonStore{}
}

func (s *comparisonStore) Save(_ context.Context, c *store.SavedComparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now()
	}

	saved := *c
	saved.ProductIDs = append([]string(nil), c.ProductIDs...)
	s.items = append(s.items, &saved)

	return nil
}

func (s *comparisonStore) History(_ context.Context, userID string, limit int) ([]*store.SavedComparison, error) {
	limit = store.ClampLimit(limit, store.DefaultComparisonHistoryLimit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var history []*store.SavedComparison
	for i := len(s.items) - 1; i >= 0 && len(history) < limit; i-- {
		if c := s.items[i]; c.UserID == userID {
			saved := *c
			saved.ProductIDs = append([]string(nil), c.ProductIDs...)
			history = append(history, &saved)
		}
	}
	return history, nil
}
