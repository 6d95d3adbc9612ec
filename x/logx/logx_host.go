//go:build !(rp2040 || rp2350)

package logx

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type zapLogger struct{ s *zap.SugaredLogger }

func (l zapLogger) Debugw(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l zapLogger) Infow(msg string, kv ...any)  { l.s.Infow(msg, kv...) }
func (l zapLogger) Warnw(msg string, kv ...any)  { l.s.Warnw(msg, kv...) }
func (l zapLogger) Errorw(msg string, kv ...any) { l.s.Errorw(msg, kv...) }
func (l zapLogger) Named(name string) Logger     { return zapLogger{l.s.Named(name)} }
func (l zapLogger) Sync() error                  { return l.s.Sync() }

// NewConfig is a console config without stack traces, writing to stderr.
func NewConfig(level Level) zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zapcore.Level(level)),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		DisableStacktrace: true,
		DisableCaller:     true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// New builds a logger at the named level.
func New(level string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	z, err := NewConfig(lvl).Build()
	if err != nil {
		return nil, err
	}
	return zapLogger{z.Sugar()}, nil
}

// NewNop discards everything.
func NewNop() Logger { return zapLogger{zap.NewNop().Sugar()} }

// NewObserved records entries at level and above in memory, for tests.
func NewObserved(level Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.Level(level))
	return zapLogger{zap.New(core).Sugar()}, logs
}
