package comparison

import (
	"math"
	"sort"
	"strings"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
)

// SortPolicy 비교 그룹의 최종 정렬 정책
type SortPolicy string

const (
	// SortByOfferCount 브랜드 수가 많은 그룹을 먼저 보여준다. (기본값)
	SortByOfferCount SortPolicy = "offers"

	// SortByMinPrice 최저가가 낮은 그룹을 먼저 보여준다.
	SortByMinPrice SortPolicy = "price"
)

// ParseSortPolicy 빈 값은 SortByOfferCount로 해석합니다.
func ParseSortPolicy(s string) (SortPolicy, error) {
	switch SortPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByOfferCount:
		return SortByOfferCount, nil
	case SortByMinPrice:
		return SortByMinPrice, nil
	default:
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 비교 정렬 기준입니다: '%s' (offers, price 중 하나)", s)
	}
}

// Offer 비교 그룹 안에서 한 브랜드가 제시하는 가격 정보입니다.
type Offer struct {
	ProductID       string  `json:"product_id"`
	Brand           string  `json:"brand"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent float64 `json:"discount_percent"`
	IsDiscounted    bool    `json:"is_discounted"`
	SavingsAmount   float64 `json:"savings_amount"`
	InStock         bool    `json:"in_stock"`
	ProductURL      string  `json:"product_url,omitempty"`
}

// ComparisonGroup 같은 상품으로 판단된 레코드들의 묶음입니다. 요청마다 새로 만들어지고 저장되지 않습니다.
type ComparisonGroup struct {
	GroupKey string `json:"group_key"`

	// 대표 필드: 해당 키로 처음 들어온 레코드의 값
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	Category string `json:"category"`

	// Offers 브랜드별 오퍼 (브랜드당 하나, 나중 레코드가 덮어씀)
	Offers map[string]Offer `json:"offers"`

	// Brands 처음 등장한 순서의 브랜드 목록
	Brands []string `json:"brands"`

	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	BrandCount int     `json:"brand_count"`
}

func newComparisonGroup(key string, r Record) *ComparisonGroup {
	return &ComparisonGroup{
		GroupKey: key,
		Title:    r.Title,
		ImageURL: r.ImageURL,
		Category: r.Category,
		Offers:   make(map[string]Offer),
		MinPrice: math.Inf(1),
		MaxPrice: 0,
	}
}

// Spread 그룹 내 최고가와 최저가의 차이. 오퍼가 없으면 0입니다.
func (g *ComparisonGroup) Spread() float64 {
	if len(g.Offers) == 0 {
		return 0
	}
	return g.MaxPrice - g.MinPrice
}

// OffersInOrder 브랜드 등장 순서대로 오퍼를 반환합니다.
func (g *ComparisonGroup) OffersInOrder() []Offer {
	offers := make([]Offer, 0, len(g.Brands))
	for _, brand := range g.Brands {
		offers = append(offers, g.Offers[brand])
	}
	return offers
}

// BestOffer 최저가 오퍼를 반환합니다. 같은 가격이면 먼저 등장한 브랜드가 우선입니다.
func (g *ComparisonGroup) BestOffer() (Offer, bool) {
	var best Offer
	found := false
	for _, brand := range g.Brands {
		o := g.Offers[brand]
		if !found || o.Price < best.Price {
			best, found = o, true
		}
	}
	return best, found
}

func (g *ComparisonGroup) put(r Record) {
	price := *r.Price

	offer := Offer{
		ProductID:       r.ProductID,
		Brand:           r.Brand,
		Price:           price,
		OriginalPrice:   r.OriginalPrice,
		DiscountPercent: r.DiscountPercent,
		IsDiscounted:    r.IsDiscounted,
		SavingsAmount:   r.SavingsAmount,
		InStock:         r.InStock,
		ProductURL:      r.ProductURL,
	}

	_, replaced := g.Offers[r.Brand]
	g.Offers[r.Brand] = offer

	if !replaced {
		g.Brands = append(g.Brands, r.Brand)
		g.BrandCount = len(g.Brands)
		g.MinPrice = math.Min(g.MinPrice, price)
		g.MaxPrice = math.Max(g.MaxPrice, price)
		return
	}

	// 덮어쓴 오퍼의 가격이 최저/최고였을 수 있으므로 다시 계산한다
	g.MinPrice, g.MaxPrice = math.Inf(1), 0
	for _, o := range g.Offers {
		g.MinPrice = math.Min(g.MinPrice, o.Price)
		g.MaxPrice = math.Max(g.MaxPrice, o.Price)
	}
}

// Group 레코드를 그룹 키별로 묶어 비교 그룹 목록을 반환합니다.
//
// 같은 입력 순서에 대해 항상 같은 결과를 반환합니다.
//   - 그룹은 키가 처음 등장한 순서로 만들어지며 대표 필드도 그 레코드에서 가져온다.
//   - 브랜드와 가격이 모두 있는 레코드만 오퍼가 된다. 같은 그룹의 같은 브랜드는 나중 레코드가 이긴다.
//   - 오퍼가 하나도 없는 그룹은 제외한다.
//   - 정렬은 안정 정렬이므로 동률이면 처음 등장한 그룹이 앞선다.
func Group(records []Record, keyFunc KeyFunc, policy SortPolicy) []*ComparisonGroup {
	index := make(map[string]int, len(records))
	groups := make([]*ComparisonGroup, 0, len(records))

	for _, r := range records {
		key := keyFunc(r)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, newComparisonGroup(key, r))
		}

		if r.Groupable() {
			groups[i].put(r)
		}
	}

	result := groups[:0]
	for _, g := range groups {
		if len(g.Offers) > 0 {
			result = append(result, g)
		}
	}

	sortGroups(result, policy)

	return result
}

func sortGroups(groups []*ComparisonGroup, policy SortPolicy) {
	switch policy {
	case SortByMinPrice:
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].MinPrice < groups[j].MinPrice
		})
	default:
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].BrandCount > groups[j].BrandCount
		})
	}
}
