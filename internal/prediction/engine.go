package prediction

import (
	"context"
	"math"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/tidwall/gjson"
)

const component = "prediction.engine"

const (
	MinTargetDays     = 1
	MaxTargetDays     = 365
	DefaultTargetDays = 30

	// 엔진을 사용할 수 없을 때의 대체 예측 값
	FallbackConfidence     = 70
	FallbackRecommendation = "Monitor price for changes"
)

// Runner 외부 엔진 실행기. subprocess.Runner가 구현합니다.
type Runner interface {
	Run(ctx context.Context, payload any) ([]byte, error)
}

type productData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
}

type request struct {
	ProductData productData `json:"product_data"`
	TargetDays  int         `json:"target_days"`
}

// Engine 가격 예측 엔진
type Engine struct {
	runner Runner
	now    func() time.Time
}

// NewEngine 새로운 Engine을 생성합니다. runner가 nil이면 항상 대체 예측을 반환합니다.
func NewEngine(runner Runner) *Engine {
	return &Engine{runner: runner, now: time.Now}
}

// Predict 상품의 targetDays일 후 가격을 예측합니다.
//
// 입력이 잘못된 경우에만 에러를 반환합니다. 엔진 실행이나 출력 해석에 실패하면
// 현재 가격을 그대로 예측값으로 사용하는 결정적인 대체 예측(Fallback=true)을 반환합니다.
func (e *Engine) Predict(ctx context.Context, p *catalog.Product, targetDays int) (*Prediction, error) {
	if targetDays < MinTargetDays || targetDays > MaxTargetDays {
		return nil, apperrors.Newf(apperrors.InvalidInput, "예측 기간은 %d일 이상 %d일 이하여야 합니다 (입력값: %d)", MinTargetDays, MaxTargetDays, targetDays)
	}
	if !p.HasPrice() {
		return nil, apperrors.Newf(apperrors.InvalidInput, "가격 정보가 없는 상품은 예측할 수 없습니다 (ID: %s)", p.ID)
	}

	now := e.now()
	base := &Prediction{
		ProductID:      p.ID,
		CurrentPrice:   p.EffectivePrice(),
		PredictionDate: now,
		TargetDate:     now.AddDate(0, 0, targetDays),
		Status:         StatusActive,
	}

	if e.runner == nil {
		return fallback(base), nil
	}

	out, err := e.runner.Run(ctx, request{
		ProductData: productData{
			ID:          p.ID,
			Name:        p.Title,
			Price:       p.EffectivePrice(),
			Category:    p.Category,
			Brand:       p.Brand,
			Description: p.Description,
		},
		TargetDays: targetDays,
	})
	if err == nil {
		err = parse(out, base)
	}
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"product_id":  p.ID,
			"target_days": targetDays,
			"error":       err,
		}).Warn("가격 예측 엔진을 사용할 수 없어 대체 예측을 반환합니다")

		return fallback(base), nil
	}

	return base, nil
}

// fallback 현재 가격을 예측값으로 사용하는 대체 예측
func fallback(p *Prediction) *Prediction {
	p.PredictedPrice = p.CurrentPrice
	p.Confidence = FallbackConfidence
	p.Trend = TrendStable
	p.PriceChangePercent = 0
	p.Recommendation = FallbackRecommendation
	p.Factors = []Factor{{Factor: "Market Analysis", Impact: ImpactNeutral, Weight: 0.5}}
	p.HistoricalData = nil
	p.Fallback = true
	return p
}

// parse 엔진 출력을 해석하여 p를 채웁니다.
//
// 출력은 {"success": true, "prediction": {...}} 형식이거나 prediction 객체 자체일 수 있습니다.
// predicted_price와 confidence는 필수이고 나머지 필드는 선택입니다.
func parse(out []byte, p *Prediction) error {
	doc := gjson.ParseBytes(out)

	if success := doc.Get("success"); success.Exists() && !success.Bool() {
		return apperrors.Newf(apperrors.ExecutionFailed, "가격 예측 엔진이 실패를 반환했습니다: %s", doc.Get("error").String())
	}

	result := doc.Get("prediction")
	if !result.Exists() {
		result = doc
	}

	predicted := result.Get("predicted_price")
	if predicted.Type != gjson.Number || predicted.Float() < 0 {
		return apperrors.New(apperrors.ParsingFailed, "가격 예측 결과에 올바른 predicted_price가 없습니다")
	}
	confidence := result.Get("confidence")
	if confidence.Type != gjson.Number {
		return apperrors.New(apperrors.ParsingFailed, "가격 예측 결과에 올바른 confidence가 없습니다")
	}

	p.PredictedPrice = round2(predicted.Float())
	p.Confidence = clamp(confidence.Float(), 0, 100)
	p.Trend = parseTrend(result.Get("trend").String())
	p.Recommendation = result.Get("recommendation").String()

	if change := result.Get("price_change_percent"); change.Type == gjson.Number {
		p.PriceChangePercent = change.Float()
	} else if p.CurrentPrice > 0 {
		p.PriceChangePercent = round2((p.PredictedPrice - p.CurrentPrice) / p.CurrentPrice * 100)
	}

	p.Factors = []Factor{}
	result.Get("factors").ForEach(func(_, f gjson.Result) bool {
		name := f.Get("factor").String()
		if name == "" {
			return true
		}

		weight := 0.5
		if w := f.Get("weight"); w.Type == gjson.Number {
			weight = clamp(w.Float(), 0, 1)
		}

		p.Factors = append(p.Factors, Factor{
			Factor:      name,
			Impact:      parseImpact(f.Get("impact").String()),
			Weight:      weight,
			Description: f.Get("description").String(),
		})
		return true
	})

	result.Get("historical_data").ForEach(func(_, h gjson.Result) bool {
		date, ok := parseTime(h.Get("date").String())
		price := h.Get("price")
		if ok && price.Type == gjson.Number {
			p.HistoricalData = append(p.HistoricalData, PricePoint{Date: date, Price: price.Float()})
		}
		return true
	})

	return nil
}

func parseTrend(s string) Trend {
	switch t := Trend(s); t {
	case TrendIncreasing, TrendDecreasing:
		return t
	default:
		return TrendStable
	}
}

func parseImpact(s string) Impact {
	switch i := Impact(s); i {
	case ImpactPositive, ImpactNegative:
		return i
	default:
		return ImpactNeutral
	}
}

// timeLayouts 엔진이 출력하는 날짜 형식. 시간대가 없으면 UTC로 해석한다.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
