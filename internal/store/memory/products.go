package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	"github.com/darkkaiser/pricewise-server/internal/store"
)

type productStore struct {
	mu sync.RWMutex

	items map[string]*catalog.Product

	// order 등록 순서. 조회 결과의 정렬 기준이 같을 때 이 순서를 따른다.
	order []string

	now func() time.Time
}

func newProductStore() *productStore {
	return &productStore{
		items: make(map[string]*catalog.Product),
		now:   time.Now,
	}
}

func cloneProduct(p *catalog.Product) *catalog.Product {
	c := *p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return &c
}

// snapshot 등록 순서대로 모든 상품의 복사본을 반환합니다. 호출자가 읽기 잠금을 잡고 있어야 합니다.
func (s *productStore) snapshot() []*catalog.Product {
	products := make([]*catalog.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, cloneProduct(s.items[id]))
	}
	return products
}

func (s *productStore) FindProducts(ctx context.Context, filter catalog.Filter) ([]*catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter.Apply(s.snapshot()), nil
}

func (s *productStore) Get(_ context.Context, id string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return nil, store.NewErrProductNotFound(id)
	}
	return cloneProduct(p), nil
}

func (s *productStore) GetMany(_ context.Context, ids []string) ([]*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.items[id]; ok {
			products = append(products, cloneProduct(p))
		}
	}
	return products, nil
}

func (s *productStore) Upsert(_ context.Context, p *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if p.ID == "" {
		p.ID = newID()
	}

	if existing, ok := s.items[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		s.order = append(s.order, p.ID)
	}
	p.UpdatedAt = now

	s.items[p.ID] = cloneProduct(p)

	return nil
}

func (s *productStore) Featured(_ context.Context, limit int) ([]*catalog.Product, error) {
	return s.byDiscount(store.ClampLimit(limit, store.DefaultFeaturedLimit), func(p *catalog.Product) bool {
		return p.Discounted() && p.InStock()
	}), nil
}

func (s *productStore) TopDiscounts(_ context.Context, limit int) ([]*catalog.Product, error) {
	return s.byDiscount(store.ClampLimit(limit, store.DefaultTopDiscountsLimit), func(p *catalog.Product) bool {
		return p.Discount() > 0 && p.InStock()
	}), nil
}

func (s *productStore) byDiscount(limit int, keep func(p *catalog.Product) bool) []*catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var products []*catalog.Product
	for _, p := range s.snapshot() {
		if keep(p) {
			products = append(products, p)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Discount() > products[j].Discount()
	})

	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

func (s *productStore) SimilarTo(_ context.Context, id string, limit int) ([]*catalog.Product, error) {
	limit = store.ClampLimit(limit, store.DefaultSimilarLimit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	base, ok := s.items[id]
	if !ok {
		return nil, store.NewErrProductNotFound(id)
	}

	var similar []*catalog.Product
	for _, p := range s.snapshot() {
		if p.ID == id || !strings.EqualFold(p.Category, base.Category) {
			continue
		}
		similar = append(similar, p)
	}

	catalog.SortProducts(similar, catalog.SortByPrice, false)

	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}
