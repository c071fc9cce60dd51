package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeBot struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	errs []error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return tgbotapi.Message{}, err
	}
	return tgbotapi.Message{}, nil
}

func newTestNotifier(bot *fakeBot) *Notifier {
	n := newWithClient(bot, 12345)
	n.limiter = rate.NewLimiter(rate.Inf, 0)
	n.retryDelay = time.Millisecond
	return n
}

func TestNotifier_Send(t *testing.T) {
	t.Parallel()

	t.Run("HTML 모드로 전송", func(t *testing.T) {
		t.Parallel()

		bot := &fakeBot{}
		n := newTestNotifier(bot)

		require.NoError(t, n.Send(context.Background(), "<b>가격 하락</b>"))
		require.Len(t, bot.sent, 1)
		assert.Equal(t, int64(12345), bot.sent[0].ChatID)
		assert.Equal(t, tgbotapi.ModeHTML, bot.sent[0].ParseMode)
	})

	t.Run("400 응답이면 서식 없이 재전송", func(t *testing.T) {
		t.Parallel()

		bot := &fakeBot{errs: []error{&tgbotapi.Error{Code: 400, Message: "Bad Request: can't parse entities"}}}
		n := newTestNotifier(bot)

		require.NoError(t, n.Send(context.Background(), "<b>깨진 태그"))
		require.Len(t, bot.sent, 2)
		assert.Equal(t, tgbotapi.ModeHTML, bot.sent[0].ParseMode)
		assert.Empty(t, bot.sent[1].ParseMode)
	})

	t.Run("5xx는 재시도 후 성공", func(t *testing.T) {
		t.Parallel()

		bot := &fakeBot{errs: []error{&tgbotapi.Error{Code: 502, Message: "Bad Gateway"}}}
		n := newTestNotifier(bot)

		require.NoError(t, n.Send(context.Background(), "hello"))
		assert.Len(t, bot.sent, 2)
	})

	t.Run("재시도 불가 오류", func(t *testing.T) {
		t.Parallel()

		bot := &fakeBot{errs: []error{&tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked"}}}
		n := newTestNotifier(bot)

		err := n.Send(context.Background(), "hello")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
		assert.Len(t, bot.sent, 1)
	})

	t.Run("최대 재시도 초과", func(t *testing.T) {
		t.Parallel()

		netErr := errors.New("connection reset by peer")
		bot := &fakeBot{errs: []error{netErr, netErr, netErr, netErr}}
		n := newTestNotifier(bot)

		err := n.Send(context.Background(), "hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, netErr)
		assert.Len(t, bot.sent, maxRetries)
	})

	t.Run("취소된 컨텍스트", func(t *testing.T) {
		t.Parallel()

		bot := &fakeBot{}
		n := newTestNotifier(bot)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, n.Send(ctx, "hello"), context.Canceled)
		assert.Empty(t, bot.sent)
	})
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	t.Run("짧은 메시지는 그대로", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"a\nb"}, splitMessage("a\nb", 10))
	})

	t.Run("줄 단위 분할", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, splitMessage("aaaa\nbbbb\ncccc", 10))
	})

	t.Run("한 줄이 limit보다 길면 강제 분할", func(t *testing.T) {
		t.Parallel()

		line := strings.Repeat("가", 10) // 30 bytes
		chunks := splitMessage("x\n"+line, 8)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 8)
			assert.True(t, utf8.ValidString(c))
		}
		assert.Equal(t, "x\n"+line, strings.Replace(strings.Join(chunks, ""), "x", "x\n", 1))
	})
}

func TestShouldRetry(t *testing.T) {
	t.Parallel()

	assert.True(t, shouldRetry(0))
	assert.True(t, shouldRetry(429))
	assert.True(t, shouldRetry(500))
	assert.False(t, shouldRetry(400))
	assert.False(t, shouldRetry(403))
}
