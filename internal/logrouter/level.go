package logrouter

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/tsutils/tsutils/pkg/errors"
)

// The configuration speaks the five-level scale DEBUG < INFO < WARNING <
// ERROR < CRITICAL. CRITICAL maps onto zapcore.DPanicLevel, the highest
// level that never terminates the process.
// 配置使用五级刻度 DEBUG < INFO < WARNING < ERROR < CRITICAL。
// CRITICAL 映射到 zapcore.DPanicLevel，即不会终止进程的最高级别。

// ParseLevel converts a configured level name to a zapcore.Level.
// ParseLevel 将配置的级别名称转换为 zapcore.Level。
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "INFO":
		return zapcore.InfoLevel, nil
	case "WARNING", "WARN":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "CRITICAL":
		return zapcore.DPanicLevel, nil
	}
	return zapcore.InvalidLevel, errors.NewLevelError(name)
}

// LevelName renders a zapcore.Level with the configuration's naming.
// LevelName 以配置的命名方式渲染 zapcore.Level。
func LevelName(l zapcore.Level) string {
	switch {
	case l <= zapcore.DebugLevel:
		return "DEBUG"
	case l == zapcore.InfoLevel:
		return "INFO"
	case l == zapcore.WarnLevel:
		return "WARNING"
	case l == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}
