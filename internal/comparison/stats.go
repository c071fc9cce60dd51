package comparison

import (
	"math"
	"sort"
)

// AggregateStats 한 번의 비교 요청 전체에 대한 통계입니다.
//
// 가격 통계는 그룹이 아닌 가격이 있는 모든 레코드를 대상으로 계산합니다.
type AggregateStats struct {
	TotalProducts int     `json:"total_products"`
	TotalGroups   int     `json:"total_groups"`
	AveragePrice  float64 `json:"average_price"`
	LowestPrice   float64 `json:"lowest_price"`
	HighestPrice  float64 `json:"highest_price"`

	// SavingsOpportunities 브랜드가 2개 이상이고 가격차가 기준을 초과하는 그룹 수
	SavingsOpportunities int     `json:"savings_opportunities"`
	BestSavings          float64 `json:"best_savings"`

	DiscountedCount int     `json:"discounted_count"`
	TotalSavings    float64 `json:"total_savings"`
}

// IsSavingsOpportunity 그룹이 절약 기회인지 판단합니다. 가격차가 기준과 정확히 같으면 제외합니다.
func IsSavingsOpportunity(g *ComparisonGroup, threshold float64) bool {
	return g.BrandCount >= 2 && g.Spread() > threshold
}

// Aggregate 레코드와 그룹으로부터 통계를 계산합니다.
//
// 가격이 있는 레코드가 하나도 없으면 nil을 반환하여 0으로 채워진 통계와 구분합니다.
// 합계는 값을 정렬한 뒤 더하므로 레코드 순서가 달라도 결과가 비트 단위로 같습니다.
func Aggregate(records []Record, groups []*ComparisonGroup, threshold float64) *AggregateStats {
	prices := make([]float64, 0, len(records))
	var savings []float64
	discounted := 0

	for _, r := range records {
		if r.Priced() {
			prices = append(prices, *r.Price)
		}
		if r.IsDiscounted {
			discounted++
			savings = append(savings, r.SavingsAmount)
		}
	}

	if len(prices) == 0 {
		return nil
	}

	stats := &AggregateStats{
		TotalProducts:   len(prices),
		TotalGroups:     len(groups),
		AveragePrice:    round2(orderedSum(prices) / float64(len(prices))),
		LowestPrice:     math.Inf(1),
		DiscountedCount: discounted,
		TotalSavings:    round2(orderedSum(savings)),
	}

	for _, p := range prices {
		stats.LowestPrice = math.Min(stats.LowestPrice, p)
		stats.HighestPrice = math.Max(stats.HighestPrice, p)
	}

	for _, g := range groups {
		if !IsSavingsOpportunity(g, threshold) {
			continue
		}
		stats.SavingsOpportunities++
		stats.BestSavings = math.Max(stats.BestSavings, g.Spread())
	}

	return stats
}

// orderedSum 값을 오름차순으로 정렬한 뒤 합산합니다. 입력 슬라이스는 정렬됩니다.
func orderedSum(values []float64) float64 {
	sort.Float64s(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
