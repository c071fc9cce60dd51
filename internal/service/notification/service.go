package notification

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/pkg/mark"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
)

const component = "notification.service"

const (
	// DefaultQueueSize 발송 대기열 크기
	DefaultQueueSize = 30

	// DefaultEnqueueTimeout 대기열이 가득 찼을 때 Notify 호출이 기다리는 최대 시간
	DefaultEnqueueTimeout = 5 * time.Second

	// DefaultSendTimeout 메시지 한 건을 실제로 전송할 때의 제한 시간
	DefaultSendTimeout = 30 * time.Second

	// DefaultDrainTimeout 종료 시 대기열에 남은 메시지를 처리하는 최대 시간
	DefaultDrainTimeout = 60 * time.Second
)

var (
	// ErrServiceStopped 서비스가 시작되지 않았거나 이미 종료된 상태에서 발송을 요청했을 때 반환됩니다.
	ErrServiceStopped = apperrors.New(apperrors.Unavailable, "알림 서비스가 실행 중이 아닙니다")

	// ErrQueueFull 대기 시간 안에 발송 대기열에 자리가 나지 않았을 때 반환됩니다.
	ErrQueueFull = apperrors.New(apperrors.Unavailable, "알림 발송 대기열이 가득 찼습니다")
)

// Sender 알림 발송을 요청하는 쪽(가격 추적기, 스케줄러)이 사용하는 인터페이스입니다.
type Sender interface {
	Notify(ctx context.Context, message string) error
	NotifyError(ctx context.Context, message string) error
	SupportsHTML() bool
}

type request struct {
	message       string
	errorOccurred bool
}

// Service 발송 요청을 대기열에 적재하고 별도 고루틴에서 순차적으로 전송합니다.
type Service struct {
	notifier Notifier

	queue          chan request
	enqueueTimeout time.Duration
	sendTimeout    time.Duration
	drainTimeout   time.Duration

	running   bool
	runningMu sync.RWMutex
}

var _ Sender = (*Service)(nil)

// NewService 새로운 알림 서비스 인스턴스를 생성합니다.
func NewService(notifier Notifier) *Service {
	if notifier == nil {
		panic("Notifier는 필수입니다")
	}

	return &Service{
		notifier: notifier,

		queue:          make(chan request, DefaultQueueSize),
		enqueueTimeout: DefaultEnqueueTimeout,
		sendTimeout:    DefaultSendTimeout,
		drainTimeout:   DefaultDrainTimeout,
	}
}

// Start 발송 워커를 시작합니다. serviceStopCtx가 취소되면 남은 메시지를 처리한 뒤 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("알림 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}
	s.running = true

	go s.run(serviceStopCtx, serviceStopWG)

	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": s.notifier.ID(),
		"queue_size":  cap(s.queue),
	}).Info("서비스 시작 완료: 알림 서비스가 정상적으로 초기화되었습니다")

	return nil
}

// Notify 일반 알림 메시지를 대기열에 적재합니다.
func (s *Service) Notify(ctx context.Context, message string) error {
	return s.enqueue(ctx, request{message: message})
}

// NotifyError 운영 오류 알림 메시지를 대기열에 적재합니다.
func (s *Service) NotifyError(ctx context.Context, message string) error {
	return s.enqueue(ctx, request{message: message, errorOccurred: true})
}

// Health 발송 작업자가 실행 중이 아니면 ErrServiceStopped를 반환합니다.
func (s *Service) Health(context.Context) error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		return ErrServiceStopped
	}
	return nil
}

func (s *Service) SupportsHTML() bool {
	return s.notifier.SupportsHTML()
}

func (s *Service) enqueue(ctx context.Context, req request) error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		return ErrServiceStopped
	}

	timer := time.NewTimer(s.enqueueTimeout)
	defer timer.Stop()

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id": s.notifier.ID(),
			"queue_size":  cap(s.queue),
		}).Warn("발송 요청 거부: 대기열이 가득 찼습니다")
		return ErrQueueFull
	}
}

func (s *Service) run(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	for {
		select {
		case req := <-s.queue:
			s.send(req)

		case <-serviceStopCtx.Done():
			s.runningMu.Lock()
			s.running = false
			s.runningMu.Unlock()

			s.drain()

			applog.WithComponent(component).Info("알림 서비스 종료 완료")
			return
		}
	}
}

// drain 종료 시점에 대기열에 남아 있는 메시지를 제한 시간 안에서 최대한 발송한다.
func (s *Service) drain() {
	deadline := time.NewTimer(s.drainTimeout)
	defer deadline.Stop()

	for {
		select {
		case req := <-s.queue:
			s.send(req)
		case <-deadline.C:
			applog.WithComponentAndFields(component, applog.Fields{
				"remaining": len(s.queue),
			}).Warn("종료 대기 시간 초과: 남은 알림은 발송되지 않습니다")
			return
		default:
			return
		}
	}
}

func (s *Service) send(req request) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": s.notifier.ID(),
				"panic":       r,
			}).Error("메시지 처리 실패: 발송 중 패닉 발생 (해당 건 스킵)")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	message := req.message
	if req.errorOccurred {
		message = s.decorateError(message)
	}

	if err := s.notifier.Send(ctx, message); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id":    s.notifier.ID(),
			"error":          err,
			"message_length": len(message),
		}).Error("알림 발송에 실패했습니다")
	}
}

func (s *Service) decorateError(message string) string {
	if s.notifier.SupportsHTML() {
		return mark.Alert.String() + " <b>오류가 발생했습니다</b>\n\n" + message
	}
	return mark.Alert.String() + " 오류가 발생했습니다\n\n" + message
}
