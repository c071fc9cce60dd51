// Package telegram 텔레그램 봇 API로 알림 메시지를 전송하는 Notifier 구현입니다.
package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/darkkaiser/pricewise-server/internal/config"
	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/darkkaiser/pricewise-server/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "notification.telegram"

const (
	// messageMaxLength 텔레그램 단일 메시지 최대 길이(4096)보다 여유를 둔 분할 기준
	messageMaxLength = 3900

	maxRetries = 3

	defaultRetryDelay = time.Second

	// 텔레그램은 채팅방당 초당 1회 전송을 권장한다
	defaultRateLimit = 1
	defaultRateBurst = 5

	defaultHTTPClientTimeout = 30 * time.Second
)

// botClient 테스트에서 텔레그램 API 호출을 대체하기 위한 최소 인터페이스
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier 설정된 채팅방으로 메시지를 전송합니다.
type Notifier struct {
	client botClient
	chatID int64

	limiter    *rate.Limiter
	retryDelay time.Duration
}

// New 봇 토큰으로 텔레그램 API 클라이언트를 초기화합니다.
func New(cfg config.TelegramConfig, debug bool) (*Notifier, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": strutil.MaskSensitiveData(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 클라이언트를 초기화합니다")

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: defaultHTTPClientTimeout})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}
	botAPI.Debug = debug

	return newWithClient(botAPI, cfg.ChatID), nil
}

func newWithClient(client botClient, chatID int64) *Notifier {
	return &Notifier{
		client: client,
		chatID: chatID,

		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		retryDelay: defaultRetryDelay,
	}
}

func (n *Notifier) ID() string { return "telegram" }

func (n *Notifier) SupportsHTML() bool { return true }

// Send 메시지를 줄 단위로 분할하여 순서대로 전송합니다. 한 조각이라도 실패하면 즉시 중단합니다.
func (n *Notifier) Send(ctx context.Context, message string) error {
	for _, chunk := range splitMessage(message, messageMaxLength) {
		if err := n.sendWithRetry(ctx, chunk, true); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) sendWithRetry(ctx context.Context, message string, useHTML bool) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	if useHTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := n.client.Send(msg)
		if err == nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id":        n.chatID,
				"attempt":        attempt,
				"html":           useHTML,
				"message_length": len(message),
			}).Debug("발송 성공")
			return nil
		}

		lastErr = err
		code, retryAfter := parseTelegramError(err)

		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": n.chatID,
			"attempt": attempt,
			"code":    code,
			"error":   err,
		}).Warn("발송 실패: 텔레그램 API 호출에서 오류가 발생했습니다")

		// 400은 대부분 HTML 파싱 실패이므로 서식 없이 다시 보낸다
		if useHTML && code == http.StatusBadRequest {
			return n.sendWithRetry(ctx, message, false)
		}
		if !shouldRetry(code) || attempt == maxRetries {
			break
		}

		delay := n.retryDelay
		if retryAfter > 0 {
			delay = time.Duration(retryAfter) * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return apperrors.Wrap(lastErr, apperrors.Unavailable, "텔레그램 메시지 전송에 실패했습니다")
}

// shouldRetry 4xx는 429를 제외하고 재시도하지 않는다. 네트워크 오류(code 0)와 5xx는 재시도한다.
func shouldRetry(code int) bool {
	if code >= 400 && code < 500 {
		return code == http.StatusTooManyRequests
	}
	return true
}

func parseTelegramError(err error) (code int, retryAfter int) {
	var apiErr tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.ResponseParameters.RetryAfter
	}
	var apiErrPtr *tgbotapi.Error
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, apiErrPtr.ResponseParameters.RetryAfter
	}
	return 0, 0
}

// splitMessage 줄바꿈 단위로 limit 바이트 이하의 조각을 만든다. 한 줄이 limit보다 길면 UTF-8 경계에서 자른다.
func splitMessage(message string, limit int) []string {
	if len(message) <= limit {
		return []string{message}
	}

	var chunks []string
	var sb strings.Builder

	flush := func() {
		if sb.Len() > 0 {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
	}

	for line := range strings.SplitSeq(message, "\n") {
		need := len(line)
		if sb.Len() > 0 {
			need++
		}
		if sb.Len()+need > limit {
			flush()
		}

		for len(line) > limit {
			var head string
			head, line = safeSplit(line, limit)
			chunks = append(chunks, head)
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	flush()

	return chunks
}

// safeSplit limit 바이트 이내에서 룬 경계를 지켜 문자열을 둘로 나눈다.
func safeSplit(s string, limit int) (chunk, remainder string) {
	if len(s) <= limit {
		return s, ""
	}

	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	if i == 0 {
		return s[:limit], s[limit:]
	}
	return s[:i], s[i:]
}
