// Package scheduler 가격 추적, 카탈로그 수집 같은 주기 작업을 Cron 스케줄에 맞춰 실행합니다.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/service/notification"
	"github.com/darkkaiser/pricewise-server/pkg/cronx"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// DefaultJobTimeout Job.Timeout이 지정되지 않은 작업의 최대 실행 시간
const DefaultJobTimeout = 10 * time.Minute

// notifyTimeout 작업 실패 알림 요청 시 최대 대기 시간
const notifyTimeout = 5 * time.Second

// Job 스케줄에 따라 반복 실행되는 작업
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler 등록된 작업들을 Cron 스케줄에 맞춰 자동으로 실행하는 서비스입니다.
type Scheduler struct {
	jobs []Job

	cron *cron.Cron

	// notificationSender 작업 실패를 관리자에게 알리는 인터페이스입니다.
	notificationSender notification.Sender

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(jobs []Job, notificationSender notification.Sender) *Scheduler {
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Scheduler{
		jobs: jobs,

		notificationSender: notificationSender,
	}
}

// Start 스케줄러를 시작하고 작업들을 Cron 엔진에 등록합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
//
// 반환값:
//   - error: 작업의 Cron 표현식이 올바르지 않거나 이름이 중복된 경우
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// 1. Cron 엔진 초기화
	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드: 초 분 시 일 월 요일)
	// - Recover: Panic 발생 시 복구하여 다른 작업에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	// 2. 작업 등록
	if err := s.registerJobs(c); err != nil {
		serviceStopWG.Done()
		return err
	}

	// 3. 스케줄러 시작
	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_schedules": len(s.cron.Entries()),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	// 4. 종료 신호 대기
	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.stop()
	}()

	return nil
}

// stop 실행 중인 스케줄러를 중지하고 진행 중인 작업이 끝날 때까지 기다립니다.
func (s *Scheduler) stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

func (s *Scheduler) registerJobs(c *cron.Cron) error {
	seen := make(map[string]struct{}, len(s.jobs))

	for _, job := range s.jobs {
		if _, dup := seen[job.Name]; dup {
			return NewErrDuplicateJob(job.Name)
		}
		seen[job.Name] = struct{}{}

		if _, err := c.AddFunc(job.Spec, func() { s.runJob(job) }); err != nil {
			return NewErrInvalidCronSpec(job.Name, job.Spec, err)
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"job":  job.Name,
			"spec": job.Spec,
		}).Debug("작업 스케줄 등록")
	}

	return nil
}

// runJob 작업 하나를 실행한다. 작업 컨텍스트는 서비스 종료 신호와 분리되어 있으며,
// 종료 시 cron.Stop()이 진행 중인 작업의 완료를 기다린다.
func (s *Scheduler) runJob(job Job) {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	started := time.Now()
	err := job.Run(ctx)

	fields := applog.Fields{
		"job":     job.Name,
		"elapsed": time.Since(started).String(),
	}
	if err == nil {
		applog.WithComponentAndFields(component, fields).Info("작업 실행 완료")
		return
	}

	fields["error"] = err
	message := fmt.Sprintf("작업 실행 실패 (%s): %v", job.Name, err)
	applog.WithComponentAndFields(component, fields).Error(message)

	notifyCtx, cancelNotify := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancelNotify()

	if nerr := s.notificationSender.NotifyError(notifyCtx, message); nerr != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"job":   job.Name,
			"error": nerr,
		}).Warn("작업 실패 알림 발송 요청에 실패했습니다")
	}
}
