package xlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logLevel string

const (
	LogLevelDebug logLevel = "DEBUG"
	LogLevelInfo  logLevel = "INFO"
	LogLevelWarn  logLevel = "WARN"
	LogLevelError logLevel = "ERROR"
)

func (lvl logLevel) zapLevel() zapcore.Level {
	switch lvl {
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	case LogLevelDebug:
		fallthrough
	default:
	}
	return zapcore.DebugLevel
}

func (lvl logLevel) String() string {
	return string(lvl)
}

type logEncoderType uint8

const (
	JSON logEncoderType = iota
	PlainText
	_encMax
)

const (
	coreKeyIgnored = ""
	envLogLevelKey = "XLOG_LVL"
)

var encoderMap = map[logEncoderType]func(cfg zapcore.EncoderConfig) zapcore.Encoder{
	JSON:      zapcore.NewJSONEncoder,
	PlainText: zapcore.NewConsoleEncoder,
}

func getEncoderByType(typ logEncoderType) func(cfg zapcore.EncoderConfig) zapcore.Encoder {
	enc, ok := encoderMap[typ]
	if !ok {
		return zapcore.NewJSONEncoder
	}
	return enc
}

func defaultWriteSyncer() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stdout)
}

// XLogger mainly implemented by Uber zap logger.
//
// ErrorStack is used to print the frames carried by an
// infra.ErrorStack in JSON format instead of the zap
// default plain text stacktrace.
//
// Log format is not recommended, because it is low performance.
type XLogger interface {
	zap() *zap.Logger

	// Named returns a child logger tagged with the component name.
	Named(component string) XLogger
	IncreaseLogLevel(level zapcore.Level)
	Level() string
	Sync() error

	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(err error, msg string, fields ...zap.Field)
	ErrorStack(err error, msg string, fields ...zap.Field)

	Logf(lvl zapcore.Level, format string, args ...any)
}
