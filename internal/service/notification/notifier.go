// Package notification 가격 하락 알림과 운영 오류 알림을 외부 채널로 발송합니다.
package notification

import (
	"context"

	applog "github.com/darkkaiser/pricewise-server/pkg/log"
)

// Notifier 하나의 알림 채널(텔레그램 등)에 메시지를 동기적으로 전송합니다.
type Notifier interface {
	ID() string

	Send(ctx context.Context, message string) error

	// SupportsHTML true이면 메시지 본문에 HTML 서식 태그를 사용할 수 있다.
	SupportsHTML() bool
}

// LogNotifier 외부 채널이 설정되지 않았을 때 알림을 로그로만 남기는 Notifier입니다.
type LogNotifier struct{}

var _ Notifier = LogNotifier{}

func (LogNotifier) ID() string { return "log" }

func (LogNotifier) Send(_ context.Context, message string) error {
	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": "log",
	}).Info(message)
	return nil
}

func (LogNotifier) SupportsHTML() bool { return false }
