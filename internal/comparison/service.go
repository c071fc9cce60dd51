// Package comparison 여러 브랜드의 상품을 같은 상품 단위로 묶고 가격 통계를 계산합니다.
//
// 처리 단계:
//  1. 필터: 요청 조건을 검증하고 저장소에서 후보 레코드를 가져온다.
//  2. 그룹핑: 그룹 키로 레코드를 묶고 브랜드별 오퍼를 만든다.
//  3. 통계: 가격, 할인, 절약 기회 통계를 계산한다.
//
// 그룹핑과 통계는 입출력이 없는 순수 계산이며 요청 간에 공유되는 상태가 없습니다.
package comparison

import (
	"context"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/pkg/metrics"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
)

const component = "comparison.service"

// ProductSource 조건에 맞는 상품을 실제 가격 오름차순으로 최대 filter.Limit개 반환하는 저장소입니다.
type ProductSource interface {
	FindProducts(ctx context.Context, filter catalog.Filter) ([]*catalog.Product, error)
}

// Options 서비스 동작 설정
type Options struct {
	// SavingsThreshold 절약 기회 판단 기준 가격차 (초과)
	SavingsThreshold float64
	DefaultLimit     int
	MaxLimit         int
	Granularity      Granularity
	Sort             SortPolicy
}

// DefaultOptions 기본 설정을 반환합니다.
func DefaultOptions() Options {
	return Options{
		SavingsThreshold: 100,
		DefaultLimit:     DefaultLimit,
		MaxLimit:         DefaultMaxLimit,
		Granularity:      GranularityCoarse,
		Sort:             SortByOfferCount,
	}
}

// Result 가격 비교 결과입니다.
//
// 후보 레코드가 없으면 Groups와 AvailableBrands는 빈 배열, Stats는 nil입니다.
type Result struct {
	Groups []*ComparisonGroup `json:"groups"`
	Stats  *AggregateStats    `json:"stats"`

	// AvailableBrands 그룹핑 전 후보 레코드에 등장한 브랜드 (처음 등장한 순서)
	AvailableBrands []string `json:"available_brands"`

	// SkippedRecords 식별 필드 누락이나 잘못된 가격으로 제외된 레코드 수
	SkippedRecords int `json:"skipped_records"`
}

// Service 가격 비교 서비스
type Service struct {
	source ProductSource
	opts   Options
}

// NewService 새로운 Service를 생성합니다.
func NewService(source ProductSource, opts Options) *Service {
	if source == nil {
		panic("ProductSource는 필수입니다")
	}

	def := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = def.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = def.MaxLimit
	}
	if opts.Granularity == "" {
		opts.Granularity = def.Granularity
	}
	if opts.Sort == "" {
		opts.Sort = def.Sort
	}

	return &Service{source: source, opts: opts}
}

// Compare 조건에 맞는 상품을 비교 그룹으로 묶고 통계를 계산합니다.
//
// 필터 조건이 잘못되면 조회하지 않고 InvalidInput 에러를 반환합니다.
// 결과가 없는 것은 에러가 아니며 빈 Result를 반환합니다.
func (s *Service) Compare(ctx context.Context, c Criteria) (*Result, error) {
	if err := c.Validate(); err != nil {
		metrics.ComparisonsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	limit := effectiveLimit(c.Limit, s.opts.DefaultLimit, s.opts.MaxLimit)

	products, err := s.source.FindProducts(ctx, c.filter(limit))
	if err != nil {
		metrics.ComparisonsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.Wrap(err, apperrors.System, "가격 비교 대상 상품 조회에 실패했습니다")
	}

	// 저장소가 상한을 지키지 않더라도 그룹핑 전에 다시 자른다
	if len(products) > limit {
		products = products[:limit]
	}

	records, skipped := s.toRecords(products)

	result := &Result{
		Groups:          []*ComparisonGroup{},
		AvailableBrands: availableBrands(records),
		SkippedRecords:  skipped,
	}

	if len(records) == 0 {
		metrics.ComparisonsTotal.WithLabelValues("empty").Inc()
		return result, nil
	}

	granularity := c.Granularity
	if granularity == "" {
		granularity = s.opts.Granularity
	}
	policy := c.Sort
	if policy == "" {
		policy = s.opts.Sort
	}

	result.Groups = Group(records, granularity.KeyFunc(), policy)
	result.Stats = Aggregate(records, result.Groups, s.opts.SavingsThreshold)

	metrics.ComparisonsTotal.WithLabelValues("ok").Inc()
	metrics.ComparisonGroups.Observe(float64(len(result.Groups)))

	applog.WithComponentAndFields(component, applog.Fields{
		"candidates":  len(products),
		"groups":      len(result.Groups),
		"skipped":     skipped,
		"granularity": granularity,
		"sort":        policy,
	}).Debug("가격 비교 완료")

	return result, nil
}

// toRecords 상품을 비교 레코드로 변환하고 식별 필드가 없거나 가격이 잘못된 레코드는 건너뜁니다.
func (s *Service) toRecords(products []*catalog.Product) ([]Record, int) {
	records := make([]Record, 0, len(products))
	skipped := 0

	for _, p := range products {
		if p == nil {
			skipped++
			continue
		}

		r := NewRecord(p)
		if err := r.validate(); err != nil {
			skipped++
			metrics.MalformedRecordsTotal.Inc()
			applog.WithComponentAndFields(component, applog.Fields{
				"product_id": p.ID,
				"error":      err,
			}).Warn("형식이 잘못된 상품 레코드를 비교 대상에서 제외합니다")
			continue
		}

		records = append(records, r)
	}

	return records, skipped
}

// availableBrands 중복을 제거한 브랜드 목록을 처음 등장한 순서로 반환합니다.
func availableBrands(records []Record) []string {
	brands := []string{}
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Brand == "" {
			continue
		}
		if _, ok := seen[r.Brand]; ok {
			continue
		}
		seen[r.Brand] = struct{}{}
		brands = append(brands, r.Brand)
	}
	return brands
}
