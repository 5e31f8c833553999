package kinetik

import (
	"fmt"
	"io"
	"log"
	"os"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger filters by a minimum level and splits warnings and
// errors onto a second stream. The core is single-threaded (all logging
// happens inside Step), so there is no locking here.
type DefaultLogger struct {
	minLevel LogLevel
	prefix   string
	out      *log.Logger
	err      *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLoggerTo(os.Stdout, os.Stderr, prefix, debug)
}

// NewLoggerTo builds a logger over explicit writers, which the step
// driver can point at a file or a test buffer.
func NewLoggerTo(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	minLevel := LevelInfo
	if debug {
		minLevel = LevelDebug
	}
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		minLevel: minLevel,
		prefix:   prefix,
		out:      log.New(out, "", flags),
		err:      log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.minLevel <= LevelDebug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.minLevel = LevelDebug
	} else {
		l.minLevel = LevelInfo
	}
}

func (l *DefaultLogger) logf(level LogLevel, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", level, msg)
	}
	if level >= LevelWarn {
		l.err.Print(msg)
		return
	}
	l.out.Print(msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.logf(LevelInfo, format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.logf(LevelWarn, format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.logf(LevelError, format, args...)
}

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	app.addResources(NewDefaultLogger(m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger                             { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op
// logger. Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
