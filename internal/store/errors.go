package store

import (
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
)

// NewErrProductNotFound 상품이 없을 때의 에러
func NewErrProductNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "상품을 찾을 수 없습니다 (ID: %s)", id)
}

// NewErrAlreadyInWishlist 위시리스트 중복 등록 에러
func NewErrAlreadyInWishlist(productID string) error {
	return apperrors.Newf(apperrors.Conflict, "이미 위시리스트에 담긴 상품입니다 (ID: %s)", productID)
}

// NewErrNotInWishlist 위시리스트에 없는 상품 에러
func NewErrNotInWishlist(productID string) error {
	return apperrors.Newf(apperrors.NotFound, "위시리스트에 없는 상품입니다 (ID: %s)", productID)
}

// NewErrAlreadyTracked 가격 추적 중복 등록 에러
func NewErrAlreadyTracked(productID string) error {
	return apperrors.Newf(apperrors.Conflict, "이미 가격을 추적 중인 상품입니다 (ID: %s)", productID)
}

// NewErrNotTracked 추적 중이 아닌 상품 에러
func NewErrNotTracked(productID string) error {
	return apperrors.Newf(apperrors.NotFound, "가격을 추적 중인 상품이 아닙니다 (ID: %s)", productID)
}

// NewErrTrackedNotFound 추적 항목 ID로 찾지 못했을 때의 에러
func NewErrTrackedNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "가격 추적 항목을 찾을 수 없습니다 (ID: %s)", id)
}

// NewErrPredictionNotFound 예측이 없을 때의 에러
func NewErrPredictionNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "가격 예측을 찾을 수 없습니다 (ID: %s)", id)
}
