// Package prediction 외부 가격 예측 엔진을 호출하고 예측 결과의 수명 주기를 관리합니다.
package prediction

import (
	"math"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
)

// Status 예측 상태
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// Trend 예측된 가격 추세
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Impact 예측 요인이 가격에 미치는 영향
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Factor 예측 근거가 된 요인. Weight는 0~1 범위입니다.
type Factor struct {
	Factor      string  `json:"factor"`
	Impact      Impact  `json:"impact"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// PricePoint 과거 가격 데이터
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Prediction 한 상품에 대한 가격 예측 결과입니다.
type Prediction struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	ProductID string `json:"product_id"`

	CurrentPrice       float64      `json:"current_price"`
	PredictedPrice     float64      `json:"predicted_price"`
	Confidence         float64      `json:"confidence"`
	Trend              Trend        `json:"trend"`
	PriceChangePercent float64      `json:"price_change_percent"`
	Recommendation     string       `json:"recommendation,omitempty"`
	Factors            []Factor     `json:"factors"`
	HistoricalData     []PricePoint `json:"historical_data,omitempty"`

	// Fallback 예측 엔진을 사용할 수 없어 현재 가격으로 대체한 결과인지 여부
	Fallback bool `json:"fallback"`

	PredictionDate time.Time `json:"prediction_date"`
	TargetDate     time.Time `json:"target_date"`

	ActualPrice *float64 `json:"actual_price,omitempty"`
	Accuracy    *float64 `json:"accuracy,omitempty"`
	Status      Status   `json:"status"`
}

// IsExpired 목표 날짜가 지났는지 여부
func (p *Prediction) IsExpired(now time.Time) bool {
	return now.After(p.TargetDate)
}

// Complete 실제 가격으로 정확도를 계산하고 완료 상태로 바꿉니다.
func (p *Prediction) Complete(actualPrice float64) error {
	accuracy, err := Accuracy(p.PredictedPrice, actualPrice)
	if err != nil {
		return err
	}

	p.ActualPrice = &actualPrice
	p.Accuracy = &accuracy
	p.Status = StatusCompleted

	return nil
}

// Accuracy 예측 가격과 실제 가격의 오차율로 정확도(0~100)를 계산합니다.
//
//	Accuracy(90, 100) == 90
func Accuracy(predicted, actual float64) (float64, error) {
	if actual <= 0 {
		return 0, apperrors.Newf(apperrors.InvalidInput, "실제 가격은 0보다 커야 합니다 (입력값: %v)", actual)
	}

	errorPercent := math.Abs(predicted-actual) / actual * 100

	return round2(math.Max(0, 100-errorPercent)), nil
}
