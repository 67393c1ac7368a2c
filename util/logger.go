package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	alog "github.com/apex/log"
)

// colors.
const (
	none   = 0
	red    = 31
	green  = 32
	yellow = 33
	blue   = 34
	gray   = 37
)

// Colors mapping.
var Colors = [...]int{
	alog.DebugLevel: gray,
	alog.InfoLevel:  blue,
	alog.WarnLevel:  yellow,
	alog.ErrorLevel: red,
	alog.FatalLevel: red,
}

// Strings mapping.
var Strings = [...]string{
	alog.DebugLevel: "DEBUG",
	alog.InfoLevel:  "INFO",
	alog.WarnLevel:  "WARN",
	alog.ErrorLevel: "ERROR",
	alog.FatalLevel: "FATAL",
}

type LogHandler struct {
	mu     sync.Mutex
	Writer io.Writer
	// Plain drops the color escapes, for files and tests.
	Plain bool
}

func (h *LogHandler) HandleLog(e *alog.Entry) error {
	color := Colors[e.Level]
	level := Strings[e.Level]
	names := e.Fields.Names()
	ts := time.Now().UTC().Format(time.RFC3339Nano)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Plain {
		fmt.Fprintf(h.Writer, "%6s %s %-25s", level, ts, e.Message)
		for _, name := range names {
			fmt.Fprintf(h.Writer, " %s=%v", name, e.Fields.Get(name))
		}
	} else {
		fmt.Fprintf(h.Writer, "\033[%dm%6s\033[0m %s %-25s", color, level, ts, e.Message)
		for _, name := range names {
			fmt.Fprintf(h.Writer, " \033[%dm%s\033[0m=%v", color, name, e.Fields.Get(name))
		}
	}

	fmt.Fprintln(h.Writer)

	return nil
}

var (
	logg Logger = alog.Log
)

/*
InitLogger installs the colored handler on stdout at the given level
("debug", "info", "warn", "error" or "fatal").
*/
func InitLogger(level string) (Logger, error) {
	l, err := NewLogger(level, &LogHandler{Writer: os.Stdout})
	if err != nil {
		return nil, err
	}
	logg = l
	return l, nil
}

// NewLogger builds a standalone logger writing through handler.
func NewLogger(level string, handler alog.Handler) (Logger, error) {
	lvl, err := alog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("Invalid log level %q: %w", level, err)
	}
	return &alog.Logger{Handler: handler, Level: lvl}, nil
}

// Log returns the current package logger.
func Log() Logger {
	return logg
}

// This generic logging interface hide
// an apex logger or another impl
type Logger interface {
	Debug(arg string)
	Debugf(format string, args ...interface{})
	Info(arg string)
	Infof(format string, args ...interface{})
	Warn(arg string)
	Warnf(format string, args ...interface{})
	Error(arg string)
	Errorf(format string, args ...interface{})

	// Log and terminate process (unrecoverable)
	Fatal(arg string)

	// Log with fmt.Printf-like formatting and terminate process (unrecoverable)
	Fatalf(format string, args ...interface{})

	// Set key/value context for further logging with the returned logger
	WithField(key string, value interface{}) *alog.Entry

	// Set key/value context for further logging with the returned logger
	WithFields(keyValues alog.Fielder) *alog.Entry

	// Return a logger with the specified error set, to be included in a subsequent normal logging call
	WithError(err error) *alog.Entry
}

func Debug(arg string) {
	logg.Debug(arg)
}

func Debugf(format string, args ...interface{}) {
	logg.Debugf(format, args...)
}

func Info(arg string) {
	logg.Info(arg)
}

func Infof(format string, args ...interface{}) {
	logg.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	logg.Warnf(format, args...)
}

func Error(msg string, err error) {
	logg.WithError(err).Error(msg)
}
