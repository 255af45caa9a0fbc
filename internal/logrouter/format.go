package logrouter

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// asctimeLayout mirrors the [YYYY-MM-DD HH:MM:SS,mmm] timestamps the
// original configuration produced.
const asctimeLayout = "2006-01-02 15:04:05,000"

// newEncoder builds a console encoder for one format template. Token
// presence toggles the corresponding entry field; the rendered line is
// "[timestamp]  LEVEL message" for the shipped templates.
// newEncoder 为一个格式模板构建 console 编码器。标记的出现与否决定对应的
// 条目字段；对于内置模板，渲染结果为 "[timestamp]  LEVEL message"。
func newEncoder(f FormatterSpec) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:       zapcore.OmitKey,
		LevelKey:      zapcore.OmitKey,
		NameKey:       zapcore.OmitKey,
		CallerKey:     zapcore.OmitKey,
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    zapcore.OmitKey,
		StacktraceKey: zapcore.OmitKey,
		LineEnding:    zapcore.DefaultLineEnding,

		// "[ts] " plus the console separator yields the double space
		// between the bracketed timestamp and the level.
		// "[ts] " 加上 console 分隔符产生时间戳与级别之间的双空格。
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format(asctimeLayout) + "] ")
		},
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(LevelName(l))
		},
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}

	for _, m := range formatTokenRe.FindAllStringSubmatch(f.Format, -1) {
		switch m[1] {
		case "asctime":
			cfg.TimeKey = "T"
		case "levelname":
			cfg.LevelKey = "L"
		case "name":
			cfg.NameKey = "N"
		case "message":
			cfg.MessageKey = "M"
		}
	}
	return zapcore.NewConsoleEncoder(cfg)
}
