// Package subprocess JSON을 표준 입력으로 받고 표준 출력으로 돌려주는 외부 엔진 프로세스를 실행합니다.
//
// 엔진 호출은 서킷 브레이커로 보호되며, 연속 실패가 기준에 도달하면 일정 시간 동안 즉시 Unavailable 에러를 반환합니다.
package subprocess

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/pkg/metrics"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

const component = "subprocess.runner"

const (
	defaultTimeout          = 30 * time.Second
	defaultFailureThreshold = 5
	defaultOpenTimeout      = time.Minute

	// waitDelay 프로세스 종료 후 출력 파이프가 닫히기를 기다리는 최대 시간
	waitDelay = 500 * time.Millisecond

	// maxStderrLen 에러 메시지에 포함할 표준 에러 출력의 최대 길이
	maxStderrLen = 512
)

// Config 엔진 실행 설정
type Config struct {
	// Name 로그와 지표에 사용하는 엔진 이름 (prediction, advisor)
	Name string

	Command string
	Args    []string
	Timeout time.Duration

	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Runner 외부 엔진 실행기
type Runner struct {
	name    string
	command string
	args    []string
	timeout time.Duration

	cb *gobreaker.CircuitBreaker[[]byte]
}

// New 새로운 Runner를 생성합니다. Command가 비어 있으면 패닉이 발생합니다.
func New(cfg Config) *Runner {
	if cfg.Command == "" {
		panic("실행할 엔진 명령이 설정되지 않았습니다")
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Command
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}

	metrics.EngineBreakerState.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))

	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.EngineBreakerState.WithLabelValues(name).Set(stateValue(to))

			applog.WithComponentAndFields(component, applog.Fields{
				"engine": name,
				"from":   from.String(),
				"to":     to.String(),
			}).Warn("외부 엔진 서킷 브레이커 상태 변경")
		},
		// 호출자가 요청을 취소한 것은 엔진 장애가 아니다
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Runner{
		name:    cfg.Name,
		command: cfg.Command,
		args:    append([]string(nil), cfg.Args...),
		timeout: cfg.Timeout,
		cb:      cb,
	}
}

// Name 엔진 이름
func (r *Runner) Name() string {
	return r.name
}

// State 서킷 브레이커의 현재 상태
func (r *Runner) State() gobreaker.State {
	return r.cb.State()
}

// Run payload를 JSON으로 인코딩하여 표준 입력으로 전달하고 표준 출력의 JSON을 반환합니다.
//
// 반환되는 에러 타입:
//   - Unavailable: 서킷 브레이커가 열려 있어 실행하지 않음
//   - Timeout: 제한 시간 초과
//   - ExecutionFailed: 실행 실패 또는 0이 아닌 종료 코드
//   - ParsingFailed: 출력이 올바른 JSON이 아님
func (r *Runner) Run(ctx context.Context, payload any) ([]byte, error) {
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Internal, "%s 엔진 입력을 직렬화할 수 없습니다", r.name)
	}

	out, err := r.cb.Execute(func() ([]byte, error) {
		return r.exec(ctx, input)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.EngineCallsTotal.WithLabelValues(r.name, "rejected").Inc()
			return nil, apperrors.Wrapf(err, apperrors.Unavailable, "%s 엔진을 일시적으로 사용할 수 없습니다", r.name)
		}

		metrics.EngineCallsTotal.WithLabelValues(r.name, "failure").Inc()
		applog.WithComponentAndFields(component, applog.Fields{
			"engine": r.name,
			"error":  err,
		}).Warn("외부 엔진 실행 실패")

		return nil, err
	}

	metrics.EngineCallsTotal.WithLabelValues(r.name, "success").Inc()

	return out, nil
}

func (r *Runner) exec(ctx context.Context, input []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.command, r.args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	startedAt := time.Now()
	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, apperrors.Wrapf(ctxErr, apperrors.Timeout, "%s 엔진이 제한 시간(%s) 내에 응답하지 않았습니다", r.name, r.timeout)
		}
		return nil, ctxErr
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "%s 엔진이 비정상 종료되었습니다 (exit code: %d): %s",
				r.name, exitErr.ExitCode(), truncate(strings.TrimSpace(stderr.String()), maxStderrLen))
		}
		return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "%s 엔진을 실행할 수 없습니다", r.name)
	}

	out, ok := extractJSON(stdout.Bytes())
	if !ok {
		return nil, apperrors.Newf(apperrors.ParsingFailed, "%s 엔진의 출력이 올바른 JSON 형식이 아닙니다: %s", r.name, truncate(string(out), maxStderrLen))
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"engine":   r.name,
		"duration": time.Since(startedAt).String(),
		"bytes":    len(out),
	}).Debug("외부 엔진 실행 완료")

	return out, nil
}

// extractJSON 출력에서 JSON 문서를 찾습니다. 엔진이 JSON 앞에 안내 문구를 출력하는 경우 첫 '{' 또는 '['부터 해석한다.
func extractJSON(out []byte) ([]byte, bool) {
	out = bytes.TrimSpace(out)
	if json.Valid(out) {
		return out, true
	}

	if i := bytes.IndexAny(out, "{["); i > 0 {
		if doc := out[i:]; json.Valid(doc) {
			return doc, true
		}
	}

	return out, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
