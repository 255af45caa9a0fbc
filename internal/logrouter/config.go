package logrouter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tsutils/tsutils/pkg/errors"
)

// Handler classes. The variant set is closed: a handler either writes to a
// process stream or to a size-rotated file.
// 处理器类型。变体集合是封闭的：处理器要么写入进程流，要么写入按大小轮转的文件。
const (
	ClassConsole      = "console"
	ClassRotatingFile = "rotating_file"
)

// RootDirPlaceholder is substituted with the concrete root directory when
// the configuration is loaded.
// RootDirPlaceholder 在加载配置时被替换为具体的根目录。
const RootDirPlaceholder = "{ROOT_DIR}"

// RootLoggerName is the logger every tsutils module emits through.
const RootLoggerName = "tsutils"

// Config is the logging configuration document (schema version 1).
// Config 是日志配置文档（模式版本 1）。
type Config struct {
	Version                int                      `json:"version" yaml:"version"`
	DisableExistingLoggers bool                     `json:"disable_existing_loggers" yaml:"disable_existing_loggers"`
	Formatters             map[string]FormatterSpec `json:"formatters" yaml:"formatters"`
	Handlers               map[string]HandlerSpec   `json:"handlers" yaml:"handlers"`
	Loggers                map[string]LoggerSpec    `json:"loggers" yaml:"loggers"`
}

// FormatterSpec holds a format template. Supported tokens: %(asctime)s,
// %(levelname)s, %(name)s, %(message)s. Only token presence is honored:
// a present token enables its field in the fixed
// "[timestamp]  LEVEL name message" layout; token order and literal text
// between tokens are not interpreted.
// FormatterSpec 保存格式模板。支持的标记：%(asctime)s、%(levelname)s、
// %(name)s、%(message)s。仅识别标记是否出现：出现的标记会在固定的
// "[timestamp]  LEVEL name message" 布局中启用对应字段；标记顺序和
// 标记之间的字面文本不会被解释。
type FormatterSpec struct {
	Format string `json:"format" yaml:"format"`
}

// HandlerSpec describes one output sink. Class selects the variant;
// the file fields apply to rotating_file only, Stream to console only.
// HandlerSpec 描述一个输出 sink。Class 选择变体；
// 文件字段仅适用于 rotating_file，Stream 仅适用于 console。
type HandlerSpec struct {
	Class     string `json:"class" yaml:"class"`
	Level     string `json:"level" yaml:"level"`
	Formatter string `json:"formatter" yaml:"formatter"`

	// Console variant / console 变体
	Stream string `json:"stream,omitempty" yaml:"stream,omitempty"`

	// Rotating-file variant / rotating_file 变体
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty"`
	MaxBytes    int64  `json:"maxBytes,omitempty" yaml:"maxBytes,omitempty"`
	BackupCount int    `json:"backupCount,omitempty" yaml:"backupCount,omitempty"`

	// Optional expr filter over {Level, Logger, Message}. Records
	// evaluating to false are dropped by this handler only.
	// 可选的 expr 过滤表达式，作用于 {Level, Logger, Message}。
	// 结果为 false 的记录仅被该处理器丢弃。
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// LoggerSpec binds a named logger to handlers at a minimum severity.
type LoggerSpec struct {
	Level     string   `json:"level" yaml:"level"`
	Propagate bool     `json:"propagate" yaml:"propagate"`
	Handlers  []string `json:"handlers" yaml:"handlers"`
}

// defaultConfigJSON is the shipped configuration: a console handler plus
// verbose/concise/error rotating files under {ROOT_DIR}/output/logs,
// all attached to the "tsutils" logger.
const defaultConfigJSON = `{
    "version": 1,
    "disable_existing_loggers": false,
    "formatters": {
        "console": {
            "format": "[%(asctime)s]  %(levelname)s %(message)s"
        },
        "file": {
            "format": "[%(asctime)s]  %(levelname)s %(message)s"
        }
    },
    "handlers": {
        "console": {
            "class": "console",
            "level": "INFO",
            "formatter": "console",
            "stream": "stdout"
        },
        "verbose": {
            "class": "rotating_file",
            "level": "DEBUG",
            "formatter": "file",
            "filename": "{ROOT_DIR}/output/logs/verbose.log",
            "mode": "a",
            "maxBytes": 5242880,
            "backupCount": 1
        },
        "concise": {
            "class": "rotating_file",
            "level": "INFO",
            "formatter": "file",
            "filename": "{ROOT_DIR}/output/logs/concise.log",
            "mode": "a",
            "maxBytes": 5242880,
            "backupCount": 1
        },
        "error": {
            "class": "rotating_file",
            "level": "ERROR",
            "formatter": "file",
            "filename": "{ROOT_DIR}/output/logs/error.log",
            "mode": "a",
            "maxBytes": 5242880,
            "backupCount": 1
        }
    },
    "loggers": {
        "tsutils": {
            "level": "DEBUG",
            "propagate": true,
            "handlers": ["console", "verbose", "concise", "error"]
        }
    }
}`

// DefaultConfig returns the shipped configuration document.
// DefaultConfig 返回内置的默认配置文档。
func DefaultConfig() *Config {
	cfg, err := ParseConfig([]byte(defaultConfigJSON))
	if err != nil {
		panic(fmt.Sprintf("logrouter: default config is broken: %v", err))
	}
	return cfg
}

// ParseConfig decodes a configuration document. The document may be JSON
// (the shipped form) or its YAML equivalent.
// ParseConfig 解码配置文档。文档可以是 JSON（内置形式）或等价的 YAML。
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrConfigInvalid, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrConfigInvalid, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
