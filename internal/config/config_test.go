package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/pricewise-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `{"auth": {"jwt_secret": "0123456789abcdef0123"}}`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadWithFile_Defaults(t *testing.T) {
	cfg, err := LoadWithFile(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, DefaultListenPort, cfg.HTTPServer.ListenPort)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.RequestTimeout)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, DefaultSavingsThreshold, cfg.Comparison.SavingsThreshold)
	assert.Equal(t, 50, cfg.Comparison.DefaultLimit)
	assert.Equal(t, 500, cfg.Comparison.MaxLimit)
	assert.Equal(t, "coarse", cfg.Comparison.Granularity)
	assert.Equal(t, "offers", cfg.Comparison.Sort)
	assert.Equal(t, 30*time.Second, cfg.Prediction.Timeout)
	assert.False(t, cfg.Prediction.Enabled())
}

func TestLoadWithFile_FileOverridesDefaults(t *testing.T) {
	cfg, err := LoadWithFile(writeConfigFile(t, `{
		"auth": {"jwt_secret": "0123456789abcdef0123"},
		"http_server": {"listen_port": 9090, "request_timeout": "15s"},
		"comparison": {"savings_threshold": 500, "granularity": "fine", "sort": "price"},
		"prediction": {"command": "python3", "args": ["predict.py"]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPServer.ListenPort)
	assert.Equal(t, 15*time.Second, cfg.HTTPServer.RequestTimeout)
	assert.Equal(t, 500.0, cfg.Comparison.SavingsThreshold)
	assert.Equal(t, "fine", cfg.Comparison.Granularity)
	assert.Equal(t, "price", cfg.Comparison.Sort)
	assert.True(t, cfg.Prediction.Enabled())
	assert.Equal(t, []string{"predict.py"}, cfg.Prediction.Args)
}

func TestLoadWithFile_EnvOverridesFile(t *testing.T) {
	t.Setenv("PRICEWISE_COMPARISON__SAVINGS_THRESHOLD", "250")
	t.Setenv("PRICEWISE_HTTP_SERVER__ALLOW_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := LoadWithFile(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.Comparison.SavingsThreshold)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTPServer.AllowOrigins)
}

func TestLoadWithFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"JWT 비밀키 누락", `{}`},
		{"알 수 없는 필드", `{"auth": {"jwt_secret": "0123456789abcdef0123"}, "unknown_field": 1}`},
		{"잘못된 그룹핑 단위", `{"auth": {"jwt_secret": "0123456789abcdef0123"}, "comparison": {"granularity": "medium"}}`},
		{"음수 절약 기준", `{"auth": {"jwt_secret": "0123456789abcdef0123"}, "comparison": {"savings_threshold": -1}}`},
		{"최대 개수가 기본 개수보다 작음", `{"auth": {"jwt_secret": "0123456789abcdef0123"}, "comparison": {"default_limit": 100, "max_limit": 10}}`},
		{"postgres DSN 누락", `{"auth": {"jwt_secret": "0123456789abcdef0123"}, "storage": {"driver": "postgres"}}`},
		{"잘못된 cron 표현식", `{"auth": {"jwt_secret": "0123456789abcdef0123"}, "tracker": {"enabled": true, "schedule": "*/5 * * * *"}}`},
		{"중복된 수집 소스 ID", `{"auth": {"jwt_secret": "0123456789abcdef0123"}, "importer": {"sources": [
			{"id": "a", "url": "https://shop.example.com/men", "category": "men", "selectors": {"item": ".p", "title": ".t", "price": ".pr"}},
			{"id": "a", "url": "https://shop.example.com/women", "category": "women", "selectors": {"item": ".p", "title": ".t", "price": ".pr"}}
		]}}`},
		{"JSON 문법 오류", `{"auth": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithFile(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput) || apperrors.Is(err, apperrors.System), err.Error())
		})
	}
}

func TestLoadWithFile_MissingFile(t *testing.T) {
	_, err := LoadWithFile(filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.System))
}

func TestNormalizeEnvKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"PRICEWISE_DEBUG":                           "debug",
		"PRICEWISE_STORAGE__DSN":                    "storage.dsn",
		"PRICEWISE_COMPARISON__SAVINGS_THRESHOLD":   "comparison.savings_threshold",
		"PRICEWISE_NOTIFICATION__TELEGRAM__CHAT_ID": "notification.telegram.chat_id",
	}

	for input, want := range tests {
		assert.Equal(t, want, normalizeEnvKey(input))
	}
}

func TestVerifyRecommendations(t *testing.T) {
	t.Parallel()

	cfg := newDefaultConfig()
	cfg.HTTPServer.ListenPort = 80
	cfg.Tracker.Enabled = true

	warnings := cfg.VerifyRecommendations()
	assert.Len(t, warnings, 5)

	cfg.HTTPServer.ListenPort = 8080
	cfg.HTTPServer.AllowOrigins = []string{"https://shop.example.com"}
	cfg.Storage.Driver = "postgres"
	cfg.Prediction.Command = "python3"
	cfg.Tracker.Enabled = false
	assert.Empty(t, cfg.VerifyRecommendations())
}
