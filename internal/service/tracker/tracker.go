// Package tracker 사용자가 추적하는 상품의 가격 변화를 주기적으로 확인하고, 가격이 내려가면 알림을 보냅니다.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/pkg/mark"
	"github.com/darkkaiser/pricewise-server/internal/pkg/metrics"
	"github.com/darkkaiser/pricewise-server/internal/prediction"
	"github.com/darkkaiser/pricewise-server/internal/service/notification"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/darkkaiser/pricewise-server/pkg/concurrency"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/darkkaiser/pricewise-server/pkg/strutil"
)

const component = "tracker.service"

// 가격 이력의 출처
const (
	SourceTracker = "tracker"
	SourceWebsite = "website"
)

// 가격 확인 결과 (메트릭 라벨)
const (
	resultUnchanged = "unchanged"
	resultDropped   = "dropped"
	resultRaised    = "raised"
	resultFailed    = "failed"
)

// Predictor 가격 예측 엔진
type Predictor interface {
	Predict(ctx context.Context, p *catalog.Product, targetDays int) (*prediction.Prediction, error)
}

// Summary 한 번의 가격 확인 실행 결과
type Summary struct {
	Checked   int `json:"checked"`
	Dropped   int `json:"dropped"`
	Raised    int `json:"raised"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
	Notified  int `json:"notified"`
	Expired   int `json:"expired"`
}

// Service 가격 추적과 예측 이력을 관리합니다.
type Service struct {
	products    store.ProductStore
	tracked     store.TrackerStore
	history     store.PriceHistoryStore
	predictions store.PredictionStore

	predictor Predictor
	sender    notification.Sender

	// 같은 추적 항목을 API 요청과 스케줄 작업이 동시에 갱신하지 않도록 한다
	locks *concurrency.KeyedMutex

	now func() time.Time
}

// NewService 새로운 가격 추적 서비스를 생성합니다.
func NewService(st store.Store, predictor Predictor, sender notification.Sender) *Service {
	if st == nil {
		panic("Store는 필수입니다")
	}
	if predictor == nil {
		panic("Predictor는 필수입니다")
	}
	if sender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Service{
		products:    st.Products(),
		tracked:     st.Tracker(),
		history:     st.PriceHistory(),
		predictions: st.Predictions(),

		predictor: predictor,
		sender:    sender,

		locks: concurrency.NewKeyedMutex(),

		now: time.Now,
	}
}

// Track 상품을 사용자의 추적 목록에 추가하고 현재 가격을 첫 이력으로 기록합니다.
func (s *Service) Track(ctx context.Context, userID, productID string, targetPrice *float64) (*store.TrackedProduct, error) {
	if targetPrice != nil && *targetPrice <= 0 {
		return nil, apperrors.Newf(apperrors.InvalidInput, "목표 가격은 0보다 커야 합니다 (입력값: %v)", *targetPrice)
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.HasPrice() {
		return nil, apperrors.Newf(apperrors.InvalidInput, "가격 정보가 없는 상품은 추적할 수 없습니다 (ID: %s)", productID)
	}

	now := s.now()
	t := &store.TrackedProduct{
		UserID:      userID,
		ProductID:   p.ID,
		ProductName: p.Title,
		ImageURL:    p.ImageURL,
		LastPrice:   p.EffectivePrice(),
		TargetPrice: targetPrice,
		LastChecked: now,
		CreatedAt:   now,
	}
	if err := s.tracked.Track(ctx, t); err != nil {
		return nil, err
	}

	if err := s.history.Append(ctx, store.PriceHistoryEntry{
		ProductID:  p.ID,
		Price:      t.LastPrice,
		Source:     SourceTracker,
		RecordedAt: now,
	}); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"product_id": p.ID,
			"error":      err,
		}).Warn("가격 이력 기록에 실패했습니다")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"user_id":    userID,
		"product_id": p.ID,
		"price":      t.LastPrice,
	}).Info("가격 추적 시작")

	return t, nil
}

func (s *Service) Untrack(ctx context.Context, userID, productID string) error {
	return s.tracked.Untrack(ctx, userID, productID)
}

func (s *Service) List(ctx context.Context, userID string) ([]*store.TrackedProduct, error) {
	return s.tracked.List(ctx, userID)
}

// Run 스케줄 작업의 진입점입니다. 가격을 확인하고 목표 날짜가 지난 예측을 만료시킵니다.
func (s *Service) Run(ctx context.Context) error {
	summary, err := s.CheckPrices(ctx)

	expired, expErr := s.ExpirePredictions(ctx)
	summary.Expired = expired

	applog.WithComponentAndFields(component, applog.Fields{
		"checked":   summary.Checked,
		"dropped":   summary.Dropped,
		"raised":    summary.Raised,
		"unchanged": summary.Unchanged,
		"failed":    summary.Failed,
		"notified":  summary.Notified,
		"expired":   summary.Expired,
	}).Info("가격 추적 실행 완료")

	return errors.Join(err, expErr)
}

// CheckPrices 모든 추적 항목의 현재 가격을 다시 읽어 이력에 기록하고 가격 하락을 알립니다.
//
// 개별 항목의 실패는 Summary.Failed로 집계하고 다음 항목을 계속 처리합니다.
// 추적 목록을 읽지 못했거나 컨텍스트가 취소된 경우에만 에러를 반환합니다.
func (s *Service) CheckPrices(ctx context.Context) (Summary, error) {
	var summary Summary

	items, err := s.tracked.ListAll(ctx)
	if err != nil {
		return summary, apperrors.Wrap(err, apperrors.System, "추적 목록을 불러오지 못했습니다")
	}

	// 같은 상품을 여러 사용자가 추적해도 한 번의 실행에서 이력은 한 번만 남긴다
	recorded := make(map[string]struct{})

	for _, t := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Checked++

		result, notified := s.check(ctx, t, recorded)
		metrics.PriceChecksTotal.WithLabelValues(result).Inc()

		switch result {
		case resultDropped:
			summary.Dropped++
		case resultRaised:
			summary.Raised++
		case resultUnchanged:
			summary.Unchanged++
		default:
			summary.Failed++
		}
		if notified {
			summary.Notified++
		}
	}

	return summary, nil
}

func (s *Service) check(ctx context.Context, t *store.TrackedProduct, recorded map[string]struct{}) (result string, notified bool) {
	s.locks.Lock(t.ID)
	defer s.locks.Unlock(t.ID)

	fields := applog.Fields{
		"tracked_id": t.ID,
		"product_id": t.ProductID,
		"user_id":    t.UserID,
	}

	p, err := s.products.Get(ctx, t.ProductID)
	if err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Warn("추적 상품을 불러오지 못했습니다")
		return resultFailed, false
	}
	if !p.HasPrice() {
		applog.WithComponentAndFields(component, fields).Warn("추적 상품의 가격 정보가 없습니다")
		return resultFailed, false
	}

	now := s.now()
	price := p.EffectivePrice()

	if _, ok := recorded[p.ID]; !ok {
		recorded[p.ID] = struct{}{}
		if err := s.history.Append(ctx, store.PriceHistoryEntry{
			ProductID:  p.ID,
			Price:      price,
			Source:     SourceTracker,
			RecordedAt: now,
		}); err != nil {
			fields["error"] = err
			applog.WithComponentAndFields(component, fields).Warn("가격 이력 기록에 실패했습니다")
		}
	}

	switch {
	case price < t.LastPrice:
		result = resultDropped
	case price > t.LastPrice:
		result = resultRaised
	default:
		result = resultUnchanged
	}

	var notifiedAt *time.Time
	if result == resultDropped && reachedTarget(t, price) {
		if err := s.sender.Notify(ctx, s.priceDropMessage(t, p, price)); err != nil {
			fields["error"] = err
			applog.WithComponentAndFields(component, fields).Warn("가격 하락 알림 발송 요청에 실패했습니다")
		} else {
			notifiedAt = &now
			notified = true
		}
	}

	if err := s.tracked.UpdatePrice(ctx, t.ID, price, now, notifiedAt); err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("추적 가격 갱신에 실패했습니다")
		return resultFailed, notified
	}

	return result, notified
}

// reachedTarget 목표 가격이 없으면 모든 하락을, 있으면 목표 가격 이하로 내려간 경우만 알린다.
func reachedTarget(t *store.TrackedProduct, price float64) bool {
	return t.TargetPrice == nil || price <= *t.TargetPrice
}

func (s *Service) priceDropMessage(t *store.TrackedProduct, p *catalog.Product, price float64) string {
	m := mark.ForPriceChange(t.LastPrice, price)
	diff := t.LastPrice - price
	percent := 0.0
	if t.LastPrice > 0 {
		percent = math.Round(diff/t.LastPrice*1000) / 10
	}

	name := p.Title
	bold := func(v string) string { return v }
	if s.sender.SupportsHTML() {
		name = html.EscapeString(name)
		bold = func(v string) string { return "<b>" + v + "</b>" }
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", m, bold(name))
	fmt.Fprintf(&sb, "가격이 내려갔습니다: %s → %s (-%s, %.1f%%)\n", formatPrice(t.LastPrice), bold(formatPrice(price)), formatPrice(diff), percent)
	if t.TargetPrice != nil {
		fmt.Fprintf(&sb, "목표 가격: %s\n", formatPrice(*t.TargetPrice))
	}
	if p.ProductURL != "" {
		sb.WriteString(p.ProductURL)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatPrice(v float64) string {
	return "Rs. " + strutil.FormatCommas(int64(math.Round(v)))
}
