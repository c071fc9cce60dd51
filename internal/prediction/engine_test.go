package prediction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out []byte
	err error

	payload any
}

func (f *fakeRunner) Run(_ context.Context, payload any) ([]byte, error) {
	f.payload = payload
	return f.out, f.err
}

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(r Runner) *Engine {
	e := NewEngine(r)
	e.now = func() time.Time { return fixedNow }
	return e
}

func testProduct() *catalog.Product {
	return &catalog.Product{ID: "p1", Title: "Crew T-Shirt", Brand: "Outfitters", Category: "men", Price: catalog.Float(1299)}
}

func TestEngine_Predict_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		product    *catalog.Product
		targetDays int
	}{
		{"예측 기간 0", testProduct(), 0},
		{"예측 기간 초과", testProduct(), 366},
		{"가격 없는 상품", &catalog.Product{ID: "p2"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRunner{}
			_, err := newTestEngine(r).Predict(context.Background(), tt.product, tt.targetDays)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			assert.Nil(t, r.payload, "잘못된 입력이면 엔진을 호출하지 않아야 합니다")
		})
	}
}

func TestEngine_Predict_ParsesEngineOutput(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{out: []byte(`{
		"success": true,
		"prediction": {
			"current_price": 1299,
			"predicted_price": 1199.456,
			"confidence": 140,
			"trend": "decreasing",
			"price_change_percent": -7.66,
			"recommendation": "Wait for a better price",
			"factors": [
				{"factor": "Seasonal Sale", "impact": "negative", "weight": 0.8},
				{"factor": "Brand Premium", "impact": "unknown", "weight": 3},
				{"impact": "positive"}
			],
			"historical_data": [
				{"date": "2026-04-30T10:00:00.123456", "price": 1310.5},
				{"date": "bad", "price": 1}
			]
		},
		"metadata": {"model_version": "1.0.0"}
	}`)}

	p, err := newTestEngine(r).Predict(context.Background(), testProduct(), 7)
	require.NoError(t, err)

	assert.False(t, p.Fallback)
	assert.Equal(t, "p1", p.ProductID)
	assert.Equal(t, 1299.0, p.CurrentPrice)
	assert.Equal(t, 1199.46, p.PredictedPrice)
	assert.Equal(t, 100.0, p.Confidence, "신뢰도는 0~100으로 제한")
	assert.Equal(t, TrendDecreasing, p.Trend)
	assert.Equal(t, -7.66, p.PriceChangePercent)
	assert.Equal(t, "Wait for a better price", p.Recommendation)
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, fixedNow, p.PredictionDate)
	assert.Equal(t, fixedNow.AddDate(0, 0, 7), p.TargetDate)

	assert.Equal(t, []Factor{
		{Factor: "Seasonal Sale", Impact: ImpactNegative, Weight: 0.8},
		{Factor: "Brand Premium", Impact: ImpactNeutral, Weight: 1},
	}, p.Factors)

	require.Len(t, p.HistoricalData, 1)
	assert.Equal(t, 1310.5, p.HistoricalData[0].Price)

	req, ok := r.payload.(request)
	require.True(t, ok)
	assert.Equal(t, 7, req.TargetDays)
	assert.Equal(t, "Crew T-Shirt", req.ProductData.Name)
	assert.Equal(t, 1299.0, req.ProductData.Price)
}

func TestEngine_Predict_BareObjectAndDerivedChange(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{out: []byte(`{"predicted_price": 1428.9, "confidence": 82}`)}

	p, err := newTestEngine(r).Predict(context.Background(), testProduct(), 30)
	require.NoError(t, err)

	assert.False(t, p.Fallback)
	assert.Equal(t, TrendStable, p.Trend, "추세가 없으면 stable")
	assert.Equal(t, 10.0, p.PriceChangePercent)
	assert.Empty(t, p.Factors)
}

func TestEngine_Predict_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		runner Runner
	}{
		{"엔진 미설정", nil},
		{"엔진 실행 실패", &fakeRunner{err: apperrors.New(apperrors.ExecutionFailed, "exit 1")}},
		{"서킷 브레이커 개방", &fakeRunner{err: apperrors.Wrap(errors.New("circuit breaker is open"), apperrors.Unavailable, "unavailable")}},
		{"엔진이 실패 응답", &fakeRunner{out: []byte(`{"success": false, "error": "model missing"}`)}},
		{"predicted_price 누락", &fakeRunner{out: []byte(`{"prediction": {"confidence": 80}}`)}},
		{"confidence 문자열", &fakeRunner{out: []byte(`{"predicted_price": 100, "confidence": "high"}`)}},
		{"음수 예측 가격", &fakeRunner{out: []byte(`{"predicted_price": -1, "confidence": 80}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := newTestEngine(tt.runner).Predict(context.Background(), testProduct(), 14)
			require.NoError(t, err, "엔진 실패는 에러가 아닌 대체 예측으로 처리해야 합니다")

			assert.True(t, p.Fallback)
			assert.Equal(t, 1299.0, p.PredictedPrice)
			assert.Equal(t, 1299.0, p.CurrentPrice)
			assert.Equal(t, float64(FallbackConfidence), p.Confidence)
			assert.Equal(t, TrendStable, p.Trend)
			assert.Equal(t, FallbackRecommendation, p.Recommendation)
			assert.Equal(t, fixedNow.AddDate(0, 0, 14), p.TargetDate)
		})
	}
}
