package request

// AddWishlistRequest 위시리스트 추가 요청
type AddWishlistRequest struct {
	ProductID   string   `json:"product_id" validate:"required" example:"p1"`
	TargetPrice *float64 `json:"target_price,omitempty" validate:"omitempty,gt=0" example:"999"`
}

// TrackProductRequest 가격 추적 시작 요청
type TrackProductRequest struct {
	ProductID string `json:"product_id" validate:"required" example:"p1"`

	// TargetPrice 없으면 모든 가격 하락을 알린다
	TargetPrice *float64 `json:"target_price,omitempty" validate:"omitempty,gt=0" example:"999"`
}

// PredictionAccuracyRequest 예측 정확도 기록 요청
type PredictionAccuracyRequest struct {
	ActualPrice float64 `json:"actual_price" validate:"required,gt=0" example:"1150"`
}

// ImportRequest 카탈로그 수집 요청. SourceID가 비어 있으면 모든 소스를 수집한다.
type ImportRequest struct {
	SourceID string `json:"source_id,omitempty" example:"outfitters-men"`
}
