// Package catalog 상품 카탈로그 레코드와 읽기 시점에 계산되는 파생 필드를 정의합니다.
package catalog

import (
	"math"
	"time"
)

// PremiumPriceThreshold 이 가격 이상인 상품에는 premium 태그가 붙는다.
const PremiumPriceThreshold = 5000

// 파생 태그
const (
	TagSale       = "sale"
	TagOutOfStock = "out-of-stock"
	TagPremium    = "premium"
)

// Product 저장소에 보관되는 상품 레코드입니다.
//
// 브랜드와 가격은 수집 원천에 따라 비어 있을 수 있으므로 포인터로 표현합니다.
type Product struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Brand        string `json:"brand,omitempty"`
	Category     string `json:"category"`
	ProductType  string `json:"product_type,omitempty"`
	FitType      string `json:"fit_type,omitempty"`
	MaterialType string `json:"material_type,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
	Description  string `json:"description,omitempty"`

	Price           *float64 `json:"price,omitempty"`
	OriginalPrice   *float64 `json:"original_price,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	IsDiscounted    bool     `json:"is_discounted"`

	ImageURL   string `json:"image_url,omitempty"`
	ProductURL string `json:"product_url,omitempty"`

	// Availability nil이면 재고 상태를 알 수 없음
	Availability  *bool `json:"availability,omitempty"`
	StockQuantity *int  `json:"stock_quantity,omitempty"`

	Rating    float64   `json:"rating"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPrice 가격 정보가 있는지 여부
func (p *Product) HasPrice() bool {
	return p.Price != nil
}

// EffectivePrice 현재 지불 가격을 반환합니다. 가격이 없으면 0을 반환합니다.
func (p *Product) EffectivePrice() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// ListPrice 정가를 반환합니다. 정가가 없거나 현재 가격보다 낮으면 현재 가격을 정가로 본다.
func (p *Product) ListPrice() float64 {
	price := p.EffectivePrice()
	if p.OriginalPrice == nil || *p.OriginalPrice < price {
		return price
	}
	return *p.OriginalPrice
}

// Discount 할인율(0~100)을 반환합니다. 저장된 값이 있으면 우선 사용하고, 없으면 정가와 현재 가격으로 계산합니다.
func (p *Product) Discount() float64 {
	if p.DiscountPercent != nil {
		return clamp(*p.DiscountPercent, 0, 100)
	}

	list := p.ListPrice()
	if list <= 0 {
		return 0
	}
	return clamp((list-p.EffectivePrice())/list*100, 0, 100)
}

// Discounted 할인 중인 상품인지 여부. 플래그가 없더라도 정가보다 싸면 할인으로 본다.
func (p *Product) Discounted() bool {
	return p.IsDiscounted || p.ListPrice() > p.EffectivePrice()
}

// SavingsAmount 정가 대비 절약 금액
func (p *Product) SavingsAmount() float64 {
	return math.Max(0, p.ListPrice()-p.EffectivePrice())
}

// InStock 재고 여부. 판매 불가로 표시되었거나 재고 수량이 0 이하이면 false입니다.
// 재고 정보가 전혀 없으면 판매 중으로 간주합니다.
func (p *Product) InStock() bool {
	if p.Availability != nil && !*p.Availability {
		return false
	}
	if p.StockQuantity != nil && *p.StockQuantity <= 0 {
		return false
	}
	return true
}

// DerivedTags 저장된 태그에 상태 기반 태그를 더해 반환합니다.
func (p *Product) DerivedTags() []string {
	tags := make([]string, 0, len(p.Tags)+3)
	seen := make(map[string]struct{}, len(p.Tags)+3)
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, tag := range p.Tags {
		add(tag)
	}
	if p.Discounted() {
		add(TagSale)
	}
	if !p.InStock() {
		add(TagOutOfStock)
	}
	if p.EffectivePrice() >= PremiumPriceThreshold {
		add(TagPremium)
	}

	return tags
}

// DiscountedPrice 정가와 할인율로 판매가를 계산합니다. (반올림)
func DiscountedPrice(price, discountPercent float64) float64 {
	return math.Round(price * (1 - discountPercent/100))
}

// Savings 정가와 할인율로 절약 금액을 계산합니다. (반올림)
func Savings(price, discountPercent float64) float64 {
	return math.Round(price * discountPercent / 100)
}

// View API 응답용 상품 표현으로 파생 필드를 포함합니다.
type View struct {
	*Product

	EffectivePrice float64  `json:"effective_price"`
	Discount       float64  `json:"discount"`
	Savings        float64  `json:"savings"`
	InStock        bool     `json:"in_stock"`
	DerivedTags    []string `json:"derived_tags"`
}

// NewView 파생 필드를 계산하여 View를 생성합니다.
func NewView(p *Product) View {
	return View{
		Product:        p,
		EffectivePrice: p.EffectivePrice(),
		Discount:       math.Round(p.Discount()*100) / 100,
		Savings:        p.SavingsAmount(),
		InStock:        p.InStock(),
		DerivedTags:    p.DerivedTags(),
	}
}

// NewViews 여러 상품을 View로 변환합니다.
func NewViews(products []*Product) []View {
	views := make([]View, 0, len(products))
	for _, p := range products {
		views = append(views, NewView(p))
	}
	return views
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Float 리터럴로 포인터 값을 만들 때 사용합니다.
func Float(v float64) *float64 {
	return &v
}

func Bool(v bool) *bool {
	return &v
}

func Int(v int) *int {
	return &v
}
