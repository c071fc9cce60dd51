package tracker

import (
	"context"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/prediction"
	"github.com/darkkaiser/pricewise-server/internal/store"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
)

// Predict 상품의 미래 가격을 예측하고 사용자 예측 이력으로 저장합니다.
//
// 엔진이 과거 가격을 돌려주지 않으면 저장된 가격 이력으로 채운다.
func (s *Service) Predict(ctx context.Context, userID, productID string, targetDays int) (*prediction.Prediction, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	pred, err := s.predictor.Predict(ctx, p, targetDays)
	if err != nil {
		return nil, err
	}
	pred.UserID = userID

	if len(pred.HistoricalData) == 0 {
		entries, err := s.history.Recent(ctx, productID, store.DefaultPriceHistoryLimit)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"product_id": productID,
				"error":      err,
			}).Warn("가격 이력을 불러오지 못했습니다")
		}
		for _, e := range entries {
			pred.HistoricalData = append(pred.HistoricalData, prediction.PricePoint{Date: e.RecordedAt, Price: e.Price})
		}
	}

	if err := s.predictions.Save(ctx, pred); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "예측 결과를 저장하지 못했습니다")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"user_id":         userID,
		"product_id":      productID,
		"prediction_id":   pred.ID,
		"predicted_price": pred.PredictedPrice,
		"fallback":        pred.Fallback,
	}).Info("가격 예측 저장")

	return pred, nil
}

// ActivePredictions 사용자의 진행 중인 예측을 목표 날짜 순으로 반환합니다.
func (s *Service) ActivePredictions(ctx context.Context, userID string) ([]*prediction.Prediction, error) {
	return s.predictions.ListActive(ctx, userID, s.now())
}

// RecordAccuracy 실제 가격을 기록하여 예측의 정확도를 계산하고 완료 처리합니다.
// 다른 사용자의 예측이면 존재하지 않는 것으로 취급합니다.
func (s *Service) RecordAccuracy(ctx context.Context, userID, predictionID string, actualPrice float64) (*prediction.Prediction, error) {
	pred, err := s.predictions.Get(ctx, predictionID)
	if err != nil {
		return nil, err
	}
	if pred.UserID != userID {
		return nil, store.NewErrPredictionNotFound(predictionID)
	}

	if err := pred.Complete(actualPrice); err != nil {
		return nil, err
	}
	if err := s.predictions.Save(ctx, pred); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "예측 정확도를 저장하지 못했습니다")
	}

	return pred, nil
}

// ExpirePredictions 목표 날짜가 지난 진행 중 예측을 만료 상태로 바꿉니다.
func (s *Service) ExpirePredictions(ctx context.Context) (int, error) {
	n, err := s.predictions.ExpireBefore(ctx, s.now())
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.System, "만료된 예측을 정리하지 못했습니다")
	}
	if n > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"expired": n,
		}).Info("목표 날짜가 지난 예측을 만료 처리했습니다")
	}
	return n, nil
}

// PriceHistory 상품의 최근 가격 이력을 시간 순으로 반환합니다.
func (s *Service) PriceHistory(ctx context.Context, productID string, limit int) ([]store.PriceHistoryEntry, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}
	return s.history.Recent(ctx, productID, store.ClampLimit(limit, store.DefaultPriceHistoryLimit))
}
