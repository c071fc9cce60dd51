package comparison

import (
	"math"
	"strings"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
)

// Record 그룹핑과 통계 계산에 사용하는 상품 레코드입니다.
//
// 모든 파생 값(할인율, 절약 금액, 재고 여부)은 이 구조체로 변환되는 시점에 확정됩니다.
// Brand가 비어 있거나 Price가 nil인 레코드는 그룹에 참여하지 않습니다.
type Record struct {
	ProductID    string
	Title        string
	Brand        string
	Category     string
	ProductType  string
	FitType      string
	MaterialType string
	PrimaryColor string

	Price           *float64
	OriginalPrice   float64
	DiscountPercent float64
	IsDiscounted    bool
	SavingsAmount   float64

	ImageURL   string
	ProductURL string
	InStock    bool
}

// NewRecord 카탈로그 상품을 비교용 레코드로 변환합니다.
func NewRecord(p *catalog.Product) Record {
	r := Record{
		ProductID:    p.ID,
		Title:        p.Title,
		Brand:        strings.TrimSpace(p.Brand),
		Category:     p.Category,
		ProductType:  p.ProductType,
		FitType:      p.FitType,
		MaterialType: p.MaterialType,
		PrimaryColor: p.PrimaryColor,
		IsDiscounted: p.HasPrice() && p.Discounted(),
		ImageURL:     p.ImageURL,
		ProductURL:   p.ProductURL,
		InStock:      p.InStock(),
	}

	if p.HasPrice() {
		price := p.EffectivePrice()
		r.Price = &price
		r.OriginalPrice = p.ListPrice()
		r.DiscountPercent = p.Discount()
		r.SavingsAmount = p.SavingsAmount()
	}

	return r
}

// Priced 가격 정보가 있는지 여부
func (r Record) Priced() bool {
	return r.Price != nil
}

// Groupable 브랜드와 가격이 모두 있어 비교 그룹의 오퍼가 될 수 있는지 여부
func (r Record) Groupable() bool {
	return r.Brand != "" && r.Price != nil
}

// validate 식별 필드(상품 ID, 상품명, 카테고리)가 모두 있고 가격이 유효한 값인지 검사합니다.
func (r Record) validate() error {
	if r.Price != nil && (math.IsNaN(*r.Price) || math.IsInf(*r.Price, 0) || *r.Price < 0) {
		return newErrInvalidRecordPrice(r.ProductID, *r.Price)
	}

	var missing []string
	if strings.TrimSpace(r.ProductID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(r.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return newErrMalformedRecord(r.ProductID, missing)
	}
	return nil
}
