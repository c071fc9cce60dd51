package handler

import (
	"net/http"

	"github.com/darkkaiser/pricewise-server/internal/service/api/auth"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricewise-server/internal/service/api/v1/model/request"
	"github.com/labstack/echo/v4"
)

// ListTrackedHandler godoc
// @Summary 가격 추적 목록
// @Tags Tracker
// @Produce json
// @Success 200 {object} response.DataResponse{data=[]store.TrackedProduct}
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Security BearerAuth
// @Router /api/v1/tracker [get]
func (h *Handler) ListTrackedHandler(c echo.Context) error {
	tracked, err := h.tracker.List(c.Request().Context(), auth.MustGetUser(c).ID)
	if err != nil {
		return err
	}
	return httputil.Data(c, tracked)
}

// TrackProductHandler godoc
// @Summary 가격 추적 시작
// @Description 상품의 현재 가격을 기준으로 추적을 시작합니다. 목표 가격이 없으면 모든 가격 하락을 알립니다.
// @Tags Tracker
// @Accept json
// @Produce json
// @Param body body request.TrackProductRequest true "추적할 상품"
// @Success 201 {object} response.DataResponse{data=store.TrackedProduct}
// @Failure 400 {object} response.ErrorResponse "잘못된 요청 또는 가격 정보가 없는 상품"
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Failure 409 {object} response.ErrorResponse "이미 추적 중"
// @Security BearerAuth
// @Router /api/v1/tracker [post]
func (h *Handler) TrackProductHandler(c echo.Context) error {
	req := new(request.TrackProductRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	tracked, err := h.tracker.Track(c.Request().Context(), auth.MustGetUser(c).ID, req.ProductID, req.TargetPrice)
	if err != nil {
		return err
	}

	return httputil.DataWithStatus(c, http.StatusCreated, tracked)
}

// UntrackProductHandler godoc
// @Summary 가격 추적 중지
// @Tags Tracker
// @Produce json
// @Param productId path string true "상품 ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse "추적 중이 아닌 상품"
// @Security BearerAuth
// @Router /api/v1/tracker/{productId} [delete]
func (h *Handler) UntrackProductHandler(c echo.Context) error {
	if err := h.tracker.Untrack(c.Request().Context(), auth.MustGetUser(c).ID, c.Param("productId")); err != nil {
		return err
	}
	return httputil.Success(c)
}

// PredictPriceHandler godoc
// @Summary 가격 예측
// @Description 외부 예측 엔진으로 목표 일수 뒤의 가격을 예측하고 예측 이력으로 저장합니다.
// @Description 엔진을 사용할 수 없으면 현재 가격을 그대로 예측값으로 하는 대체 예측을 반환합니다.
// @Tags Tracker
// @Produce json
// @Param productId path string true "상품 ID"
// @Param target_days query int false "예측 목표 일수 (기본값 30)"
// @Success 200 {object} response.DataResponse{data=prediction.Prediction}
// @Failure 400 {object} response.ErrorResponse "잘못된 목표 일수"
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Security BearerAuth
// @Router /api/v1/tracker/predict/{productId} [get]
func (h *Handler) PredictPriceHandler(c echo.Context) error {
	days, err := queryInt(c, "target_days", defaultPredictionDays)
	if err != nil {
		return err
	}

	pred, err := h.tracker.Predict(c.Request().Context(), auth.MustGetUser(c).ID, c.Param("productId"), days)
	if err != nil {
		return err
	}

	return httputil.Data(c, pred)
}

// ActivePredictionsHandler godoc
// @Summary 진행 중인 예측 목록
// @Tags Tracker
// @Produce json
// @Success 200 {object} response.DataResponse{data=[]prediction.Prediction}
// @Security BearerAuth
// @Router /api/v1/tracker/predictions/active [get]
func (h *Handler) ActivePredictionsHandler(c echo.Context) error {
	preds, err := h.tracker.ActivePredictions(c.Request().Context(), auth.MustGetUser(c).ID)
	if err != nil {
		return err
	}
	return httputil.Data(c, preds)
}

// PredictionAccuracyHandler godoc
// @Summary 예측 정확도 기록
// @Description 실제 가격을 기록하여 예측의 정확도를 계산하고 예측을 완료 처리합니다.
// @Tags Tracker
// @Accept json
// @Produce json
// @Param predictionId path string true "예측 ID"
// @Param body body request.PredictionAccuracyRequest true "실제 가격"
// @Success 200 {object} response.DataResponse{data=prediction.Prediction}
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 404 {object} response.ErrorResponse "예측 없음"
// @Security BearerAuth
// @Router /api/v1/tracker/predictions/{predictionId}/accuracy [put]
func (h *Handler) PredictionAccuracyHandler(c echo.Context) error {
	req := new(request.PredictionAccuracyRequest)
	if err := bindAndValidate(c, req); err != nil {
		return err
	}

	pred, err := h.tracker.RecordAccuracy(c.Request().Context(), auth.MustGetUser(c).ID, c.Param("predictionId"), req.ActualPrice)
	if err != nil {
		return err
	}

	return httputil.Data(c, pred)
}
