package logger

import (
	"fmt"
	"io"
	"log"
)

type level string

const (
	levelError level = "Error"
	levelWarn  level = "Warn"
	levelInfo  level = "Info"
)

// Logger writes leveled lines, optionally tagged with the component that
// emitted them: "[Info] storage: transaction trx-1 has been roll backed".
type Logger struct {
	l         *log.Logger
	component string
}

func New(l *log.Logger) *Logger {
	//nolint:exhaustruct
	return &Logger{l: l}
}

// NewNop returns a logger that drops everything.
func NewNop() *Logger {
	return New(log.New(io.Discard, "", 0))
}

// Named returns a logger sharing the same output, tagged with component.
func (l *Logger) Named(component string) *Logger {
	return &Logger{l: l.l, component: component}
}

func (l *Logger) print(lvl level, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)

	if l.component == "" {
		l.l.Printf("[%s]: %s\n", lvl, msg)

		return
	}

	l.l.Printf("[%s] %s: %s\n", lvl, l.component, msg)
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.print(levelError, format, v...)
}

func (l *Logger) LogWarnf(format string, v ...any) {
	l.print(levelWarn, format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.print(levelInfo, format, v...)
}
