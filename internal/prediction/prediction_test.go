package prediction

import (
	"testing"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		predicted float64
		actual    float64
		want      float64
		wantErr   bool
	}{
		{"정확히 일치", 100, 100, 100, false},
		{"10% 낮게 예측", 90, 100, 90, false},
		{"10% 높게 예측", 110, 100, 90, false},
		{"오차가 100% 이상이면 0", 250, 100, 0, false},
		{"소수점 둘째 자리 반올림", 1299, 1399, 92.85, false},
		{"실제 가격 0", 100, 0, 0, true},
		{"실제 가격 음수", 100, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Accuracy(tt.predicted, tt.actual)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrediction_IsExpired(t *testing.T) {
	t.Parallel()

	target := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &Prediction{TargetDate: target}

	assert.False(t, p.IsExpired(target.Add(-time.Second)))
	assert.False(t, p.IsExpired(target), "목표 시각과 같으면 아직 만료가 아닙니다")
	assert.True(t, p.IsExpired(target.Add(time.Second)))
}

func TestPrediction_Complete(t *testing.T) {
	t.Parallel()

	p := &Prediction{PredictedPrice: 900, Status: StatusActive}
	require.NoError(t, p.Complete(1000))

	assert.Equal(t, StatusCompleted, p.Status)
	require.NotNil(t, p.Accuracy)
	assert.Equal(t, 90.0, *p.Accuracy)
	require.NotNil(t, p.ActualPrice)
	assert.Equal(t, 1000.0, *p.ActualPrice)

	q := &Prediction{PredictedPrice: 900, Status: StatusActive}
	require.Error(t, q.Complete(0))
	assert.Equal(t, StatusActive, q.Status, "실패하면 상태를 바꾸지 않아야 합니다")
	assert.Nil(t, q.Accuracy)
}
