package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

type componentLogger struct {
	mu        *sync.Mutex
	out       io.Writer
	level     Level
	component string
	now       func() time.Time
}

var (
	defaultMu  sync.Mutex
	defaultOut io.Writer = os.Stderr
)

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	return &componentLogger{
		mu:        &defaultMu,
		out:       defaultOut,
		level:     LevelDebug,
		component: component,
		now:       time.Now,
	}
}

// NewWriterLogger returns a logger scoped to a component writing to out.
// Intended for tests that need to capture log output.
func NewWriterLogger(out io.Writer, component string) Logger {
	return &componentLogger{
		mu:        &sync.Mutex{},
		out:       out,
		level:     LevelDebug,
		component: component,
		now:       time.Now,
	}
}

func (l *componentLogger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	component := l.component
	if component == "" {
		component = "DIAGNOSER"
	}
	message := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s [%s] [%s] %s\n",
		l.now().Format("2006-01-02 15:04:05"), level, component, message)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, Redact(line))
}

func (l *componentLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *componentLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *componentLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *componentLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
