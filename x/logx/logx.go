// Package logx is the structured logger used by the application loop, the
// ability engine, the platform provider and config loading. Host builds log
// through zap; MCU builds print key/value lines on the console.
package logx

import "github.com/pkg/errors"

// Logger takes a message and alternating key/value pairs.
type Logger interface {
	Debugw(msg string, kv ...any)
	Infow(msg string, kv ...any)
	Warnw(msg string, kv ...any)
	Errorw(msg string, kv ...any)
	// Named returns a child whose name is appended to the parent's with a dot.
	Named(name string) Logger
	Sync() error
}

type Level int8

const (
	DebugLevel Level = iota - 1
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	}
	return "unknown"
}

// ParseLevel accepts the names config validates: debug, info, warn, error.
// An empty name is info.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return InfoLevel, errors.Errorf("logx: unknown level %q", s)
}
