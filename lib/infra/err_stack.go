package infra

import (
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

const maxStackDepth = 32

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) fileLine() (string, int) {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFile", 0
	}
	return fn.FileLine(pc)
}

func (frame Frame) name() string {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - equivalent to %s:%d
// %+s - function name and full path separated by \n\t
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	file, line := frame.fileLine()
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, file)
		} else {
			_, _ = io.WriteString(s, path.Base(file))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(line))
	case 'n':
		_, _ = io.WriteString(s, funcName(frame.name()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func (frame Frame) MarshalText() ([]byte, error) {
	name := frame.name()
	if name == "unknownFunc" {
		return []byte("unknownFrame"), nil
	}
	file, line := frame.fileLine()
	builder := strings.Builder{}
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(file)
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(line))
	return []byte(builder.String()), nil
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

// ErrorStack is an error carrying the frames of the goroutine
// stack from where it was created. It can be inlined into zap
// log fields, so the stack is shipped in JSON instead of the
// zap default plain text stacktrace.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Unwrap() error
	Frames() []Frame
}

var _ ErrorStack = (*errorStack)(nil)

type errorStack struct {
	err    error
	msg    string
	frames []Frame
}

func (es *errorStack) Error() string {
	if len(es.msg) == 0 {
		return es.err.Error()
	}
	return es.msg + ": " + es.err.Error()
}

func (es *errorStack) Unwrap() error {
	return es.err
}

func (es *errorStack) Frames() []Frame {
	return es.frames
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("error", es.Error())
	return enc.AddArray("errorStack", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, frame := range es.frames {
			text, _ := frame.MarshalText()
			ae.AppendString(string(text))
		}
		return nil
	}))
}

func callers(skip int) []Frame {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

func NewErrorStack(msg string) ErrorStack {
	return &errorStack{
		err:    errors.New(msg),
		frames: callers(3),
	}
}

// WrapErrorStack returns nil if err is nil.
func WrapErrorStack(err error, msg string) ErrorStack {
	if err == nil {
		return nil
	}
	return &errorStack{
		err:    err,
		msg:    msg,
		frames: callers(3),
	}
}
