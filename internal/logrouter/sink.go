package logrouter

import (
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tsutils/tsutils/pkg/errors"
)

const mib = 1024 * 1024

// FilterEnv is the environment a handler filter expression runs against.
// FilterEnv 是处理器过滤表达式运行时的环境。
type FilterEnv struct {
	Level   string
	Logger  string
	Message string
}

var filterRegexCache sync.Map

// Match checks the message against a regular expression.
// Match 用正则表达式检查消息。
func (e FilterEnv) Match(pattern string) bool {
	re, ok := filterRegexCache.Load(pattern)
	if !ok {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		filterRegexCache.Store(pattern, compiled)
		re = compiled
	}
	return re.(*regexp.Regexp).MatchString(e.Message)
}

func compileFilter(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
}

// handlerCore wraps a zap core with the handler's name for delivery
// accounting and an optional filter program.
// handlerCore 用处理器名称包装 zap core 以进行投递计数，并带有可选的过滤程序。
type handlerCore struct {
	zapcore.Core
	name   string
	filter *vm.Program
}

func (c *handlerCore) With(fields []zapcore.Field) zapcore.Core {
	return &handlerCore{Core: c.Core.With(fields), name: c.name, filter: c.filter}
}

func (c *handlerCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *handlerCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if c.filter != nil {
		env := FilterEnv{
			Level:   LevelName(ent.Level),
			Logger:  ent.LoggerName,
			Message: ent.Message,
		}
		out, err := expr.Run(c.filter, env)
		if err != nil {
			// Fail open: a broken filter must not lose records, but the
			// failure is counted so it stays visible.
			// 失败时放行：损坏的过滤器不能丢失记录，但失败会被计数以保持可见。
			filterErrors.WithLabelValues(c.name).Inc()
		} else if pass, ok := out.(bool); ok && !pass {
			recordsFiltered.WithLabelValues(c.name).Inc()
			return nil
		}
	}
	recordsTotal.WithLabelValues(c.name).Inc()
	return c.Core.Write(ent, fields)
}

// buildSink opens the handler's output destination. For rotating files the
// parent directory is created and the target is probe-opened for append so
// permission problems fail the load instead of the first write.
// buildSink 打开处理器的输出目的地。对于轮转文件，会创建父目录并以追加方式
// 试开目标文件，使权限问题在加载时失败，而不是在第一次写入时。
func buildSink(spec HandlerSpec, filename string) (zapcore.WriteSyncer, error) {
	if spec.Class == ClassConsole {
		if spec.Stream == "stderr" {
			return zapcore.Lock(os.Stderr), nil
		}
		return zapcore.Lock(os.Stdout), nil
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewOpenError(filename, err)
	}
	f, err := os.OpenFile(filepath.Clean(filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G304 -- filename is validated by Load
	if err != nil {
		return nil, errors.NewOpenError(filename, err)
	}
	if err := f.Close(); err != nil {
		return nil, errors.NewOpenError(filename, err)
	}

	// lumberjack sizes in MiB; round the byte threshold up. An oversized
	// file is not rotated on open, only on the next overflowing write.
	// lumberjack 以 MiB 为单位；字节阈值向上取整。超限的文件不会在打开时
	// 轮转，只会在下一次超限写入时轮转。
	maxSize := int((spec.MaxBytes + mib - 1) / mib)
	if maxSize < 1 {
		maxSize = 1
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSize,
		MaxBackups: spec.BackupCount,
	}), nil
}
