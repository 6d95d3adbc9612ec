//go:build rp2040 || rp2350

package logx

import "nimbus-go/x/fmtx"

type consoleLogger struct {
	name  string
	level Level
}

func (l consoleLogger) Debugw(msg string, kv ...any) { l.emit(DebugLevel, msg, kv) }
func (l consoleLogger) Infow(msg string, kv ...any)  { l.emit(InfoLevel, msg, kv) }
func (l consoleLogger) Warnw(msg string, kv ...any)  { l.emit(WarnLevel, msg, kv) }
func (l consoleLogger) Errorw(msg string, kv ...any) { l.emit(ErrorLevel, msg, kv) }
func (l consoleLogger) Sync() error                  { return nil }

func (l consoleLogger) Named(name string) Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return consoleLogger{name: name, level: l.level}
}

func (l consoleLogger) emit(lv Level, msg string, kv []any) {
	if lv < l.level {
		return
	}
	line := lv.String() + "\t"
	if l.name != "" {
		line += l.name + "\t"
	}
	line += msg
	for i := 0; i+1 < len(kv); i += 2 {
		line += fmtx.Sprintf(" %v=%v", kv[i], kv[i+1])
	}
	println(line)
}

func New(level string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return consoleLogger{level: lvl}, nil
}

func NewNop() Logger { return consoleLogger{level: ErrorLevel + 1} }
