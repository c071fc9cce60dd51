package middleware

import (
	"fmt"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/service/api/constants"
	"github.com/darkkaiser/pricewise-server/internal/service/api/httputil"
)

var (
	// ErrTokenRequired Authorization 헤더에 Bearer 토큰이 없을 때의 에러
	ErrTokenRequired = httputil.NewUnauthorizedError(constants.ErrMsgUnauthorizedTokenMissing)

	// ErrRateLimitExceeded 허용된 요청 빈도를 초과했을 때의 에러
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrAdminRequired 관리자 전용 엔드포인트에 일반 사용자가 접근했을 때의 에러
	ErrAdminRequired = apperrors.New(apperrors.Forbidden, "관리자 권한이 필요합니다")
)

// NewErrPanicRecovered 캡처된 패닉 값을 내부 시스템 오류로 래핑하여 새로운 에러를 생성합니다.
func NewErrPanicRecovered(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "처리 중 패닉이 발생했습니다")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
