package xlog

import (
	"go.uber.org/zap/zapcore"
)

func newConsoleCore(
	lvlEnabler zapcore.LevelEnabler,
	encoder logEncoderType,
	ws zapcore.WriteSyncer,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
) zapcore.Core {
	if ws == nil {
		ws = defaultWriteSyncer()
	}
	config := zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "lvl",
		EncodeLevel:   lvlEnc,
		TimeKey:       "ts",
		EncodeTime:    tsEnc,
		CallerKey:     "callAt",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		FunctionKey:   "fn",
		NameKey:       "component",
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: coreKeyIgnored,
	}
	return zapcore.NewCore(getEncoderByType(encoder)(config), ws, lvlEnabler)
}
