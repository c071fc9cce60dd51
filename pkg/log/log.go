// Package log 애플리케이션 공통 로깅 기능을 제공합니다.
//
// logrus를 기반으로 하며 lumberjack을 통해 로그 파일을 로테이션합니다.
// 모든 로그는 component 필드를 포함하는 것을 원칙으로 합니다.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// WithComponent component 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return logrus.WithFields(newFields)
}

// SetDebugMode 디버그 모드이면 TRACE, 아니면 INFO 레벨로 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func SetFormatter(f Formatter) {
	logrus.SetFormatter(f)
}

func SetLevel(level Level) {
	logrus.SetLevel(level)
}

func GetLevel() Level {
	return logrus.GetLevel()
}

func Info(args ...any) {
	logrus.Info(args...)
}

func Warn(args ...any) {
	logrus.Warn(args...)
}

func Error(args ...any) {
	logrus.Error(args...)
}
