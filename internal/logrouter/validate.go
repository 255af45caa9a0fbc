package logrouter

import (
	"regexp"

	"github.com/tsutils/tsutils/pkg/errors"
)

var formatTokenRe = regexp.MustCompile(`%\(([a-zA-Z_]+)\)s`)

var knownTokens = map[string]bool{
	"asctime":   true,
	"levelname": true,
	"name":      true,
	"message":   true,
}

// Validate checks the document against the schema: version, the closed
// handler variant set, level names, formatter/handler references and
// format tokens. It touches no files; filesystem effects happen in Load.
// Validate 根据模式检查文档：版本、封闭的处理器变体集合、级别名称、
// formatter/handler 引用以及格式标记。它不接触任何文件；文件系统副作用发生在 Load 中。
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.NewVersionError(c.Version)
	}
	if c.DisableExistingLoggers {
		// Load never mutates previously built contexts, so silencing
		// existing loggers cannot be honored.
		// Load 不会修改已构建的上下文，因此无法支持静默已有 logger。
		return errors.NewConfigError("disable_existing_loggers", true)
	}
	if len(c.Handlers) == 0 {
		return errors.NewConfigError("handlers", "empty")
	}
	if len(c.Loggers) == 0 {
		return errors.NewConfigError("loggers", "empty")
	}
	if _, ok := c.Loggers[RootLoggerName]; !ok {
		return errors.NewConfigError("loggers", "missing "+RootLoggerName)
	}

	for name, f := range c.Formatters {
		for _, m := range formatTokenRe.FindAllStringSubmatch(f.Format, -1) {
			if !knownTokens[m[1]] {
				return errors.NewFormatError(name, m[1])
			}
		}
	}

	for name, h := range c.Handlers {
		if _, err := ParseLevel(h.Level); err != nil {
			return err
		}
		if _, ok := c.Formatters[h.Formatter]; !ok {
			return errors.NewReferenceError("handler", name, h.Formatter)
		}
		switch h.Class {
		case ClassConsole:
			switch h.Stream {
			case "", "stdout", "stderr":
			default:
				return errors.NewConfigError("stream", h.Stream)
			}
		case ClassRotatingFile:
			if h.Filename == "" {
				return errors.NewConfigError("filename", "empty")
			}
			if h.Mode != "" && h.Mode != "a" {
				return errors.NewConfigError("mode", h.Mode)
			}
			if h.MaxBytes <= 0 {
				return errors.NewConfigError("maxBytes", h.MaxBytes)
			}
			if h.BackupCount < 0 {
				return errors.NewConfigError("backupCount", h.BackupCount)
			}
		default:
			return errors.NewConfigError("class", h.Class)
		}
		if h.Filter != "" {
			if _, err := compileFilter(h.Filter); err != nil {
				return errors.NewFilterError(name, err)
			}
		}
	}

	for name, l := range c.Loggers {
		if _, err := ParseLevel(l.Level); err != nil {
			return err
		}
		if len(l.Handlers) == 0 {
			return errors.NewConfigError("loggers."+name+".handlers", "empty")
		}
		for _, ref := range l.Handlers {
			if _, ok := c.Handlers[ref]; !ok {
				return errors.NewReferenceError("logger", name, ref)
			}
		}
	}
	return nil
}
