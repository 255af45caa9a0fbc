package logrouter

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	tserrors "github.com/tsutils/tsutils/pkg/errors"
)

// placeholderRe catches template variables left over after substitution.
var placeholderRe = regexp.MustCompile(`\{[A-Z_]+\}`)

type loadOptions struct {
	parent zapcore.Core
}

// Option adjusts Load behavior.
type Option func(*loadOptions)

// WithParentCore tees records into an additional caller-owned core for
// every logger configured with propagate: true. This is the only form of
// upward propagation; Load never touches any global logger, so records
// cannot be delivered twice behind the caller's back.
// WithParentCore 为每个配置了 propagate: true 的 logger 额外接入一个由调用方
// 持有的 core。这是唯一的向上传播形式；Load 从不修改任何全局 logger，
// 因此记录不会在调用方不知情的情况下被重复投递。
func WithParentCore(core zapcore.Core) Option {
	return func(o *loadOptions) { o.parent = core }
}

// Context is the applied logging state returned by Load. It is an explicit
// handle: nothing process-global is mutated, so tests can build isolated
// contexts against temporary directories.
// Context 是 Load 返回的已生效日志状态。它是一个显式句柄：不修改任何进程
// 全局状态，因此测试可以针对临时目录构建相互隔离的上下文。
type Context struct {
	cfg     *Config
	rootDir string
	loggers map[string]*zap.Logger
	files   map[string]string
}

// Load applies a configuration document against a concrete root directory.
// The whole document is validated and every {ROOT_DIR} placeholder
// resolved before any file is created or opened; re-running Load with the
// same arguments yields a context with identical filtering behavior.
// Load 将配置文档应用到具体的根目录。在创建或打开任何文件之前，整个文档
// 会先完成校验并解析所有 {ROOT_DIR} 占位符；用相同参数重复运行 Load 会
// 得到过滤行为完全一致的上下文。
func Load(cfg *Config, rootDir string, opts ...Option) (*Context, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(rootDir) == "" {
		return nil, tserrors.NewConfigError("rootDir", "empty")
	}

	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Resolve every filename first so an unresolved placeholder fails the
	// load before any filesystem side effect.
	// 先解析所有文件名，使未解析的占位符在任何文件系统副作用之前就失败。
	files := make(map[string]string)
	for name, h := range cfg.Handlers {
		if h.Class != ClassRotatingFile {
			continue
		}
		resolved := strings.ReplaceAll(h.Filename, RootDirPlaceholder, rootDir)
		if placeholderRe.MatchString(resolved) {
			return nil, tserrors.NewPlaceholderError(name, h.Filename)
		}
		files[name] = resolved
	}

	// One sink and encoder per handler, shared across loggers so a file is
	// opened once no matter how many loggers attach the handler.
	// 每个处理器一个 sink 和编码器，在 logger 之间共享，无论多少个 logger
	// 挂载该处理器，文件都只打开一次。
	sinks := make(map[string]zapcore.WriteSyncer)
	encoders := make(map[string]zapcore.Encoder)
	filters := make(map[string]*vm.Program)
	for name, h := range cfg.Handlers {
		sink, err := buildSink(h, files[name])
		if err != nil {
			return nil, err
		}
		sinks[name] = sink
		encoders[name] = newEncoder(cfg.Formatters[h.Formatter])
		if h.Filter != "" {
			prog, err := compileFilter(h.Filter)
			if err != nil {
				return nil, tserrors.NewFilterError(name, err)
			}
			filters[name] = prog
		}
	}

	ctx := &Context{
		cfg:     cfg,
		rootDir: rootDir,
		loggers: make(map[string]*zap.Logger),
		files:   files,
	}
	for name, spec := range cfg.Loggers {
		loggerLevel, _ := ParseLevel(spec.Level)
		cores := make([]zapcore.Core, 0, len(spec.Handlers)+1)
		for _, ref := range spec.Handlers {
			handlerLevel, _ := ParseLevel(cfg.Handlers[ref].Level)
			// A record must clear both the logger's and the handler's
			// thresholds, matching the two-stage severity check.
			// 记录必须同时越过 logger 和处理器的阈值，对应两级严重性检查。
			enab := minEnabler(loggerLevel, handlerLevel)
			cores = append(cores, &handlerCore{
				Core:   zapcore.NewCore(encoders[ref], sinks[ref], enab),
				name:   ref,
				filter: filters[ref],
			})
		}
		if spec.Propagate && o.parent != nil {
			cores = append(cores, o.parent)
		}
		ctx.loggers[name] = zap.New(zapcore.NewTee(cores...)).Named(name)
	}
	return ctx, nil
}

func minEnabler(a, b zapcore.Level) zapcore.LevelEnabler {
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= a && l >= b
	})
}

// Logger returns the "tsutils" logger. Every downstream module emits
// through it or through a Named descendant.
// Logger 返回 "tsutils" logger。所有下游模块都通过它或其 Named 后代输出。
func (c *Context) Logger() *zap.Logger {
	if lg, ok := c.loggers[RootLoggerName]; ok {
		return lg
	}
	return zap.NewNop()
}

// Named returns a descendant logger (rendered "tsutils.<name>") routed
// through the same handlers.
// Named 返回一个后代 logger（显示为 "tsutils.<name>"），路由到相同的处理器。
func (c *Context) Named(name string) *zap.Logger {
	return c.Logger().Named(name)
}

// ByName returns any other configured logger.
func (c *Context) ByName(name string) (*zap.Logger, bool) {
	lg, ok := c.loggers[name]
	return lg, ok
}

// HandlerFile returns the resolved path of a rotating-file handler.
// HandlerFile 返回某个轮转文件处理器解析后的路径。
func (c *Context) HandlerFile(handler string) (string, bool) {
	path, ok := c.files[handler]
	return path, ok
}

// Sync flushes all loggers.
func (c *Context) Sync() error {
	var errs []error
	for _, lg := range c.loggers {
		if err := lg.Sync(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type ctxKey string

const contextKey = ctxKey("tsutils-logrouter")

// WithContext attaches the logging context to a context.Context.
// WithContext 将日志上下文附加到 context.Context。
func WithContext(ctx context.Context, lc *Context) context.Context {
	return context.WithValue(ctx, contextKey, lc)
}

// FromContext retrieves the logging context, or nil if absent.
func FromContext(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}
	if lc, ok := ctx.Value(contextKey).(*Context); ok {
		return lc
	}
	return nil
}

// Get returns the "tsutils" logger from the context, or a no-op logger so
// callers never need a nil check.
// Get 从 context 返回 "tsutils" logger；若不存在则返回 no-op logger，
// 调用方无需做 nil 检查。
func Get(ctx context.Context) *zap.Logger {
	if lc := FromContext(ctx); lc != nil {
		return lc.Logger()
	}
	return zap.NewNop()
}
