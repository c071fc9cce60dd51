// Package metrics Prometheus 지표를 정의합니다.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pricewise"

var (
	// HTTPRequestsTotal 경로, 메서드, 상태 코드별 HTTP 요청 수
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration 경로, 메서드별 HTTP 처리 시간
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ComparisonsTotal 결과(ok, empty, invalid, error)별 가격 비교 요청 수
	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Total number of price comparison requests by outcome",
		},
		[]string{"outcome"},
	)

	// ComparisonGroups 비교 요청 한 건에서 만들어진 그룹 수 분포
	ComparisonGroups = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "comparison_groups",
			Help:      "Number of comparison groups produced per request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// MalformedRecordsTotal 식별 필드 누락으로 건너뛴 레코드 수
	MalformedRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparison_malformed_records_total",
			Help:      "Total number of product records skipped because of missing identity fields",
		},
	)

	// EngineCallsTotal 외부 엔진(prediction, advisor) 호출 결과(success, failure, rejected)
	EngineCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_calls_total",
			Help:      "Total number of external engine invocations by outcome",
		},
		[]string{"engine", "outcome"},
	)

	// EngineBreakerState 외부 엔진 서킷 브레이커 상태 (0: closed, 1: half-open, 2: open)
	EngineBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_circuit_breaker_state",
			Help:      "Circuit breaker state of external engines (0=closed, 1=half-open, 2=open)",
		},
		[]string{"engine"},
	)

	// PriceChecksTotal 가격 추적 결과(unchanged, dropped, raised, failed)
	PriceChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracker_price_checks_total",
			Help:      "Total number of tracked price checks by result",
		},
		[]string{"result"},
	)

	// ImportedProductsTotal 수집 소스별 저장된 상품 수
	ImportedProductsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "importer_products_total",
			Help:      "Total number of products upserted by the catalog importer",
		},
		[]string{"source"},
	)
)
