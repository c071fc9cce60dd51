package scheduler

import (
	"fmt"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
)

// NewErrInvalidCronSpec Cron 표현식이 올바르지 않아 스케줄 등록에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrInvalidCronSpec(jobName, spec string, cause error) error {
	return apperrors.Wrap(cause, apperrors.InvalidInput, fmt.Sprintf("스케줄 등록 실패: 잘못된 Cron 표현식입니다 (Job=%s, Spec='%s')", jobName, spec))
}

// NewErrDuplicateJob 같은 이름의 작업이 두 번 등록되었을 때 반환하는 에러를 생성합니다.
func NewErrDuplicateJob(jobName string) error {
	return apperrors.Newf(apperrors.Conflict, "스케줄 등록 실패: 이미 등록된 작업입니다 (Job=%s)", jobName)
}
