package subprocess

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(name, script string, timeout time.Duration, threshold uint32) *Runner {
	return New(Config{
		Name:             name,
		Command:          "sh",
		Args:             []string{"-c", script},
		Timeout:          timeout,
		FailureThreshold: threshold,
		OpenTimeout:      time.Minute,
	})
}

func TestNew_PanicsWithoutCommand(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New(Config{Name: "empty"}) })
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		script   string
		timeout  time.Duration
		wantErr  apperrors.ErrorType
		wantJSON string
	}{
		{
			name:     "입력을 그대로 출력",
			script:   "cat",
			timeout:  5 * time.Second,
			wantJSON: `{"product_data":{"id":"p1"},"target_days":7}`,
		},
		{
			name:    "0이 아닌 종료 코드",
			script:  "echo boom >&2; exit 3",
			timeout: 5 * time.Second,
			wantErr: apperrors.ExecutionFailed,
		},
		{
			name:    "제한 시간 초과",
			script:  "exec sleep 5",
			timeout: 100 * time.Millisecond,
			wantErr: apperrors.Timeout,
		},
		{
			name:     "안내 문구 뒤의 JSON",
			script:   `echo "Service initialized (v1.0.0)"; echo '{"success": true}'`,
			timeout:  5 * time.Second,
			wantJSON: `{"success": true}`,
		},
		{
			name:    "JSON이 아닌 출력",
			script:  "echo not-json",
			timeout: 5 * time.Second,
			wantErr: apperrors.ParsingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := shell("test-"+tt.name, tt.script, tt.timeout, 5)
			out, err := r.Run(context.Background(), map[string]any{
				"product_data": map[string]string{"id": "p1"},
				"target_days":  7,
			})

			if tt.wantJSON != "" {
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantJSON, string(out))
				return
			}

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantErr), "에러 타입: %v", apperrors.TypeOf(err))
		})
	}
}

func TestRunner_CircuitBreaker(t *testing.T) {
	t.Parallel()

	r := shell("test-breaker", "exit 1", 5*time.Second, 2)

	for i := 0; i < 2; i++ {
		_, err := r.Run(context.Background(), struct{}{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	}

	assert.Equal(t, gobreaker.StateOpen, r.State())

	_, err := r.Run(context.Background(), struct{}{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable), "브레이커가 열리면 실행하지 않고 Unavailable을 반환해야 합니다")
}

func TestRunner_CanceledContextDoesNotTrip(t *testing.T) {
	t.Parallel()

	r := shell("test-cancel", "exec sleep 5", 5*time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, struct{}{})
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateClosed, r.State())
}
