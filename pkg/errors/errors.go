package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfigInvalid         = errors.New("invalid configuration")
	ErrUnsupportedVersion    = errors.New("unsupported configuration version")
	ErrUnresolvedReference   = errors.New("unresolved reference")
	ErrUnresolvedPlaceholder = errors.New("unresolved path placeholder")
	ErrBadLevel              = errors.New("unknown severity level")
	ErrBadFormat             = errors.New("invalid format template")
	ErrBadFilter             = errors.New("invalid filter expression")
	ErrLogFileOpen           = errors.New("log file cannot be opened")
	ErrFileNotFound          = errors.New("file not found")
	ErrNoMatch               = errors.New("no match")

	// ErrStopPool stops pool execution without failing the run.
	// ErrStopPool 停止任务池执行，但不将本次运行标记为失败。
	ErrStopPool = errors.New("pool execution stopped")
)

func NewVersionError(version int) error {
	return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
}

func NewReferenceError(kind, name, ref string) error {
	return fmt.Errorf("%w: %s %q references unknown %s", ErrUnresolvedReference, kind, name, ref)
}

func NewPlaceholderError(handler, filename string) error {
	return fmt.Errorf("%w: handler %q filename %q", ErrUnresolvedPlaceholder, handler, filename)
}

func NewLevelError(level string) error {
	return fmt.Errorf("%w: %q", ErrBadLevel, level)
}

func NewFormatError(formatter, token string) error {
	return fmt.Errorf("%w: formatter %q has unknown token %q", ErrBadFormat, formatter, token)
}

func NewFilterError(handler string, err error) error {
	return fmt.Errorf("%w: handler %q: %v", ErrBadFilter, handler, err)
}

func NewOpenError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrLogFileOpen, path, err)
}

func NewFileError(path string) error {
	return fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

// IsConfigurationError reports whether err belongs to the load-time
// configuration taxonomy (as opposed to an IO failure).
// IsConfigurationError 报告 err 是否属于加载期配置错误分类（而非 IO 失败）。
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) ||
		errors.Is(err, ErrUnsupportedVersion) ||
		errors.Is(err, ErrUnresolvedReference) ||
		errors.Is(err, ErrUnresolvedPlaceholder) ||
		errors.Is(err, ErrBadLevel) ||
		errors.Is(err, ErrBadFormat) ||
		errors.Is(err, ErrBadFilter)
}
