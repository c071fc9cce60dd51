package middleware

import (
	"bytes"
	"testing"

	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	l := Logger{Logger: logrus.New()}

	tests := []struct {
		echo log.Lvl
		app  applog.Level
	}{
		{log.DEBUG, applog.DebugLevel},
		{log.INFO, applog.InfoLevel},
		{log.WARN, applog.WarnLevel},
		{log.ERROR, applog.ErrorLevel},
	}
	for _, tt := range tests {
		l.SetLevel(tt.echo)
		assert.Equal(t, tt.app, l.Logger.Level)
		assert.Equal(t, tt.echo, l.Level())
	}

	l.SetLevel(log.OFF)
	assert.Equal(t, applog.ErrorLevel, l.Logger.Level, "OFF는 무시되어야 합니다")

	l.Logger.SetLevel(applog.TraceLevel)
	assert.Equal(t, log.OFF, l.Level())
}

func TestLogger_Output(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := Logger{Logger: logrus.New()}
	l.SetOutput(&buf)
	l.Logger.SetFormatter(&applog.JSONFormatter{})

	assert.Same(t, &buf, l.Output())

	l.Infoj(log.JSON{"port": 8080})
	assert.Contains(t, buf.String(), `"port":8080`)
	assert.Empty(t, l.Prefix())
}
