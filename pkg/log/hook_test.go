package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHook_Fire_RoutesByLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		level        Level
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{"Error은 main과 critical", ErrorLevel, true, true, false},
		{"Warn은 main만", WarnLevel, true, false, false},
		{"Info는 main만", InfoLevel, true, false, false},
		{"Debug는 verbose만", DebugLevel, false, false, true},
		{"Trace는 verbose만", TraceLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var mainBuf, criticalBuf, verboseBuf, consoleBuf bytes.Buffer
			h := &hook{
				mainWriter:     &mainBuf,
				criticalWriter: &criticalBuf,
				verboseWriter:  &verboseBuf,
				consoleWriter:  &consoleBuf,
				formatter:      &logrus.TextFormatter{DisableTimestamp: true},
			}

			entry := logrus.NewEntry(logrus.New())
			entry.Level = tt.level
			entry.Message = "테스트 메시지"

			require.NoError(t, h.Fire(entry))

			assert.Equal(t, tt.wantMain, mainBuf.Len() > 0, "main")
			assert.Equal(t, tt.wantCritical, criticalBuf.Len() > 0, "critical")
			assert.Equal(t, tt.wantVerbose, verboseBuf.Len() > 0, "verbose")
			assert.Contains(t, consoleBuf.String(), "테스트 메시지")
		})
	}
}

func TestHook_Close_StopsWriting(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := &hook{mainWriter: &buf, formatter: &logrus.TextFormatter{}}
	h.Close()

	entry := logrus.NewEntry(logrus.New())
	entry.Level = InfoLevel
	require.NoError(t, h.Fire(entry))
	assert.Zero(t, buf.Len())
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"운영 기본값", NewProductionOptions("pricewise-server"), false},
		{"개발 기본값", NewDevelopmentOptions("pricewise-server"), false},
		{"이름 누락", Options{}, true},
		{"음수 MaxAge", Options{Name: "a", MaxAge: -1}, true},
		{"음수 MaxSizeMB", Options{Name: "a", MaxSizeMB: -1}, true},
		{"음수 MaxBackups", Options{Name: "a", MaxBackups: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithComponentAndFields(t *testing.T) {
	t.Parallel()

	fields := Fields{"product_id": "p-1"}
	entry := WithComponentAndFields("comparison", fields)

	assert.Equal(t, "comparison", entry.Data["component"])
	assert.Equal(t, "p-1", entry.Data["product_id"])
	assert.NotContains(t, fields, "component", "입력 맵은 변경되지 않아야 합니다")
}
