package auth

import (
	"errors"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
)

var (
	// ErrUserMissingInContext Context에 인증된 사용자가 없을 때의 에러
	ErrUserMissingInContext = errors.New("Context에서 사용자 정보를 찾을 수 없습니다")

	// ErrUserTypeMismatch Context에 저장된 값이 *User가 아닐 때의 에러
	ErrUserTypeMismatch = errors.New("Context에 저장된 사용자 정보의 타입이 올바르지 않습니다")

	// ErrSubjectMissing 토큰에 sub 클레임이 없을 때의 에러
	ErrSubjectMissing = apperrors.New(apperrors.Unauthorized, "토큰에 사용자 식별자(sub)가 없습니다")
)
