// Package logger provides small leveled, named loggers shared by the
// pipeline and both shells.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a LOG_LEVEL style string onto a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// LevelForVerbosity translates the download verbosity setting (0, 1 or 2)
// into the minimum level that gets printed.
func LevelForVerbosity(verbosity int) Level {
	switch {
	case verbosity <= 0:
		return ERROR
	case verbosity == 1:
		return INFO
	default:
		return DEBUG
	}
}

const timeFormat = "2006-01-02 15:04:05"

var levelColors = map[Level]*color.Color{
	DEBUG: color.New(color.FgHiBlack),
	INFO:  color.New(color.FgBlue),
	WARN:  color.New(color.FgYellow),
	ERROR: color.New(color.FgRed, color.Bold),
}

type sink struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

var (
	std     = &sink{out: os.Stderr, level: levelFromEnv()}
	loggers = map[string]*Logger{}
	regMu   sync.Mutex
)

func levelFromEnv() Level {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		return ParseLevel(env)
	}
	return INFO
}

// Logger writes lines tagged with a component name.
type Logger struct {
	name string
	s    *sink
}

// Get returns the logger for the named component, creating it on first use.
func Get(name string) *Logger {
	regMu.Lock()
	defer regMu.Unlock()

	if l, ok := loggers[name]; ok {
		return l
	}
	l := &Logger{name: name, s: std}
	loggers[name] = l
	return l
}

// New returns a logger that writes to out at the given level. It is not
// registered globally and is mostly useful in tests.
func New(name string, out io.Writer, level Level) *Logger {
	return &Logger{name: name, s: &sink{out: out, level: level}}
}

// SetLevel changes the minimum level of the shared output.
func SetLevel(level Level) {
	std.mu.Lock()
	std.level = level
	std.mu.Unlock()
}

// SetOutput redirects the shared output.
func SetOutput(out io.Writer) {
	std.mu.Lock()
	std.out = out
	std.mu.Unlock()
}

// Enabled reports whether messages at level would be printed.
func (l *Logger) Enabled(level Level) bool {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return level >= l.s.level
}

func (l *Logger) Debugf(format string, args ...any) { l.emit(DEBUG, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.emit(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.emit(WARN, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.emit(ERROR, format, args...) }

func (l *Logger) emit(level Level, format string, args ...any) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if level < l.s.level {
		return
	}

	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	tag := levelColors[level].Sprintf("%-5s", level)
	fmt.Fprintf(l.s.out, "%s %s [%s] %s\n", time.Now().Format(timeFormat), tag, l.name, msg)
}
