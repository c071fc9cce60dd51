package tracker

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/pricewise-server/internal/catalog"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/darkkaiser/pricewise-server/internal/prediction"
	notificationmocks "github.com/darkkaiser/pricewise-server/internal/service/notification/mocks"
	"github.com/darkkaiser/pricewise-server/internal/store"
	"github.com/darkkaiser/pricewise-server/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	st     *memory.Store
	sender *notificationmocks.MockSender
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := memory.New()
	sender := notificationmocks.NewMockSender(t)
	svc := NewService(st, prediction.NewEngine(nil), sender)
	svc.now = func() time.Time { return fixedNow }

	ctx := context.Background()
	for _, p := range []*catalog.Product{
		{ID: "p1", Title: "Crew <Tee>", Brand: "A", Category: "Men", Price: catalog.Float(1000), ProductURL: "https://shop.example.com/p1"},
		{ID: "p2", Title: "Polo", Brand: "B", Category: "Men", Price: catalog.Float(2000)},
		{ID: "p3", Title: "Unpriced", Category: "Men"},
	} {
		require.NoError(t, st.Products().Upsert(ctx, p))
	}

	return &fixture{st: st, sender: sender, svc: svc}
}

func (f *fixture) setPrice(t *testing.T, id string, price *float64) {
	t.Helper()

	p, err := f.st.Products().Get(context.Background(), id)
	require.NoError(t, err)
	p.Price = price
	require.NoError(t, f.st.Products().Upsert(context.Background(), p))
}

func TestNewService(t *testing.T) {
	t.Parallel()

	st := memory.New()
	engine := prediction.NewEngine(nil)
	sender := notificationmocks.NewMockSender(t)

	assert.PanicsWithValue(t, "Store는 필수입니다", func() { NewService(nil, engine, sender) })
	assert.PanicsWithValue(t, "Predictor는 필수입니다", func() { NewService(st, nil, sender) })
	assert.PanicsWithValue(t, "NotificationSender는 필수입니다", func() { NewService(st, engine, nil) })
}

func TestService_Track(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	tracked, err := f.svc.Track(ctx, "u1", "p1", catalog.Float(900))
	require.NoError(t, err)
	assert.NotEmpty(t, tracked.ID)
	assert.Equal(t, "Crew <Tee>", tracked.ProductName)
	assert.Equal(t, 1000.0, tracked.LastPrice)
	assert.Equal(t, fixedNow, tracked.LastChecked)

	history, err := f.st.PriceHistory().Recent(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, SourceTracker, history[0].Source)

	tests := []struct {
		name      string
		productID string
		target    *float64
		wantType  apperrors.ErrorType
	}{
		{"이미 추적 중", "p1", nil, apperrors.Conflict},
		{"없는 상품", "missing", nil, apperrors.NotFound},
		{"가격 없는 상품", "p3", nil, apperrors.InvalidInput},
		{"0 이하 목표 가격", "p2", catalog.Float(0), apperrors.InvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Track(ctx, "u1", tt.productID, tt.target)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantType), "got %v", err)
		})
	}

	require.NoError(t, f.svc.Untrack(ctx, "u1", "p1"))
	assert.True(t, apperrors.Is(f.svc.Untrack(ctx, "u1", "p1"), apperrors.NotFound))
}

func TestService_CheckPrices(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Track(ctx, "u1", "p1", nil)
	require.NoError(t, err)
	_, err = f.svc.Track(ctx, "u2", "p1", nil)
	require.NoError(t, err)
	_, err = f.svc.Track(ctx, "u1", "p2", catalog.Float(1500))
	require.NoError(t, err)

	f.setPrice(t, "p1", catalog.Float(900))
	f.setPrice(t, "p2", catalog.Float(1800))

	f.sender.On("SupportsHTML").Return(true)
	f.sender.On("Notify", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "<b>Crew &lt;Tee&gt;</b>") &&
			strings.Contains(msg, "Rs. 1,000 → <b>Rs. 900</b>") &&
			strings.Contains(msg, "10.0%") &&
			strings.Contains(msg, "https://shop.example.com/p1")
	})).Return(nil).Twice()

	summary, err := f.svc.CheckPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Checked: 3, Dropped: 3, Notified: 2}, summary)

	tracked, err := f.st.Tracker().List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tracked, 2)
	for _, tp := range tracked {
		switch tp.ProductID {
		case "p1":
			assert.Equal(t, 900.0, tp.LastPrice)
			require.NotNil(t, tp.LastNotified)
			assert.Equal(t, fixedNow, *tp.LastNotified)
		case "p2":
			assert.Equal(t, 1800.0, tp.LastPrice)
			assert.Nil(t, tp.LastNotified, "목표 가격에 도달하지 않으면 알리지 않아야 합니다")
		}
	}

	history, err := f.st.PriceHistory().Recent(ctx, "p1", 10)
	require.NoError(t, err)
	assert.Len(t, history, 3, "추적 시작 2건 + 한 번의 실행에서 상품당 1건")

	t.Run("가격 변동 없음", func(t *testing.T) {
		summary, err := f.svc.CheckPrices(ctx)
		require.NoError(t, err)
		assert.Equal(t, Summary{Checked: 3, Unchanged: 3}, summary)
	})

	t.Run("가격 상승과 가격 정보 누락", func(t *testing.T) {
		f.setPrice(t, "p1", nil)
		f.setPrice(t, "p2", catalog.Float(2100))

		summary, err := f.svc.CheckPrices(ctx)
		require.NoError(t, err)
		assert.Equal(t, Summary{Checked: 3, Raised: 1, Failed: 2}, summary)
	})
}

func TestService_CheckPrices_NotifyFailureDoesNotMarkNotified(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Track(ctx, "u1", "p2", nil)
	require.NoError(t, err)
	f.setPrice(t, "p2", catalog.Float(1000))

	f.sender.On("SupportsHTML").Return(false)
	f.sender.On("Notify", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return !strings.Contains(msg, "<b>") && strings.Contains(msg, "Polo")
	})).Return(apperrors.New(apperrors.Unavailable, "queue full")).Once()

	summary, err := f.svc.CheckPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Dropped)
	assert.Equal(t, 0, summary.Notified)

	tracked, err := f.st.Tracker().List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, tracked[0].LastPrice)
	assert.Nil(t, tracked[0].LastNotified)
}

func TestService_Predictions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	// 예측 엔진은 실제 시각을 기준으로 목표 날짜를 정한다
	f.svc.now = time.Now

	_, err := f.svc.Track(ctx, "u1", "p1", nil)
	require.NoError(t, err)

	pred, err := f.svc.Predict(ctx, "u1", "p1", 7)
	require.NoError(t, err)
	assert.NotEmpty(t, pred.ID)
	assert.Equal(t, "u1", pred.UserID)
	assert.True(t, pred.Fallback)
	assert.Equal(t, 1000.0, pred.PredictedPrice)
	require.Len(t, pred.HistoricalData, 1, "엔진이 이력을 주지 않으면 저장된 가격 이력을 사용해야 합니다")
	assert.Equal(t, 1000.0, pred.HistoricalData[0].Price)

	_, err = f.svc.Predict(ctx, "u1", "p1", 0)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	_, err = f.svc.Predict(ctx, "u1", "missing", 7)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))

	active, err := f.svc.ActivePredictions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, pred.ID, active[0].ID)

	t.Run("다른 사용자의 예측", func(t *testing.T) {
		_, err := f.svc.RecordAccuracy(ctx, "u2", pred.ID, 950)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("잘못된 실제 가격", func(t *testing.T) {
		_, err := f.svc.RecordAccuracy(ctx, "u1", pred.ID, 0)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("만료 처리", func(t *testing.T) {
		other, err := f.svc.Predict(ctx, "u1", "p2", 3)
		require.NoError(t, err)

		f.svc.now = func() time.Time { return other.TargetDate.Add(time.Hour) }
		defer func() { f.svc.now = time.Now }()

		n, err := f.svc.ExpirePredictions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := f.st.Predictions().Get(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, prediction.StatusExpired, got.Status)
	})

	t.Run("정확도 기록", func(t *testing.T) {
		done, err := f.svc.RecordAccuracy(ctx, "u1", pred.ID, 1250)
		require.NoError(t, err)
		assert.Equal(t, prediction.StatusCompleted, done.Status)
		require.NotNil(t, done.Accuracy)
		assert.Equal(t, 80.0, *done.Accuracy)

		active, err := f.svc.ActivePredictions(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, active)
	})
}

func TestService_PriceHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for i, price := range []float64{1200, 1100, 1000} {
		require.NoError(t, f.st.PriceHistory().Append(ctx, store.PriceHistoryEntry{
			ProductID:  "p1",
			Price:      price,
			RecordedAt: fixedNow.AddDate(0, 0, i),
		}))
	}

	entries, err := f.svc.PriceHistory(ctx, "p1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1100.0, entries[0].Price)
	assert.Equal(t, 1000.0, entries[1].Price)

	_, err = f.svc.PriceHistory(ctx, "missing", 0)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestService_Run(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	assert.NoError(t, f.svc.Run(context.Background()))
}
