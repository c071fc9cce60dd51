package middleware

import (
	"io"

	applog "github.com/darkkaiser/pricewise-server/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger Echo가 요구하는 gommon log.Logger 인터페이스를 애플리케이션 로거로 구현합니다.
// Echo 내부 로그(서버 시작 실패 등)도 같은 로그 파일로 모인다.
type Logger struct {
	*applog.Logger
}

var levels = []struct {
	echo log.Lvl
	app  applog.Level
}{
	{log.DEBUG, applog.DebugLevel},
	{log.INFO, applog.InfoLevel},
	{log.WARN, applog.WarnLevel},
	{log.ERROR, applog.ErrorLevel},
}

func (l Logger) Output() io.Writer     { return l.Logger.Out }
func (l Logger) SetOutput(w io.Writer) { l.Logger.SetOutput(w) }
func (l Logger) Prefix() string        { return "" }
func (l Logger) SetPrefix(string)      {}
func (l Logger) SetHeader(string)      {}

// Level 대응하는 Echo 레벨이 없는 Trace, Fatal, Panic은 OFF로 본다.
func (l Logger) Level() log.Lvl {
	for _, lv := range levels {
		if lv.app == l.Logger.Level {
			return lv.echo
		}
	}
	return log.OFF
}

func (l Logger) SetLevel(lvl log.Lvl) {
	for _, lv := range levels {
		if lv.echo == lvl {
			l.Logger.SetLevel(lv.app)
			return
		}
	}
}

func (l Logger) Print(i ...any)                 { l.Logger.Print(i...) }
func (l Logger) Printf(format string, a ...any) { l.Logger.Printf(format, a...) }
func (l Logger) Printj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Print() }
func (l Logger) Debug(i ...any)                 { l.Logger.Debug(i...) }
func (l Logger) Debugf(format string, a ...any) { l.Logger.Debugf(format, a...) }
func (l Logger) Debugj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Debug() }
func (l Logger) Info(i ...any)                  { l.Logger.Info(i...) }
func (l Logger) Infof(format string, a ...any)  { l.Logger.Infof(format, a...) }
func (l Logger) Infoj(j log.JSON)               { l.Logger.WithFields(applog.Fields(j)).Info() }
func (l Logger) Warn(i ...any)                  { l.Logger.Warn(i...) }
func (l Logger) Warnf(format string, a ...any)  { l.Logger.Warnf(format, a...) }
func (l Logger) Warnj(j log.JSON)               { l.Logger.WithFields(applog.Fields(j)).Warn() }
func (l Logger) Error(i ...any)                 { l.Logger.Error(i...) }
func (l Logger) Errorf(format string, a ...any) { l.Logger.Errorf(format, a...) }
func (l Logger) Errorj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Error() }
func (l Logger) Fatal(i ...any)                 { l.Logger.Fatal(i...) }
func (l Logger) Fatalf(format string, a ...any) { l.Logger.Fatalf(format, a...) }
func (l Logger) Fatalj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Fatal() }
func (l Logger) Panic(i ...any)                 { l.Logger.Panic(i...) }
func (l Logger) Panicf(format string, a ...any) { l.Logger.Panicf(format, a...) }
func (l Logger) Panicj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Panic() }
