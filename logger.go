package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

type level struct {
	tag   string
	color string
}

var (
	levelInfo  = level{"INFO", "\033[32m"}
	levelWarn  = level{"WARN", "\033[33m"}
	levelError = level{"ERROR", "\033[31m"}
	levelDebug = level{"DEBUG", "\033[36m"}
)

// Logger writes leveled, colored lines. Fields attached with With are
// appended to every line as key=value pairs.
type Logger struct {
	out, errOut  *log.Logger
	debugEnabled bool
	fields       string
}

// NewLogger creates a Logger writing to stdout/stderr.
func NewLogger(debug bool) *Logger {
	return newLogger(os.Stdout, os.Stderr, debug)
}

func newLogger(out, errOut io.Writer, debug bool) *Logger {
	return &Logger{
		out:          log.New(out, "", 0),
		errOut:       log.New(errOut, "", 0),
		debugEnabled: debug,
	}
}

// With returns a copy of the logger that tags each line with key=value.
func (l *Logger) With(key, value string) *Logger {
	c := *l
	c.fields = strings.TrimSpace(c.fields + " " + key + "=" + value)
	return &c
}

func (l *Logger) Info(format string, args ...any) { l.write(l.out, levelInfo, format, args) }
func (l *Logger) Warn(format string, args ...any) { l.write(l.out, levelWarn, format, args) }
func (l *Logger) Error(format string, args ...any) { l.write(l.errOut, levelError, format, args) }

func (l *Logger) Debug(format string, args ...any) {
	if l.debugEnabled {
		l.write(l.out, levelDebug, format, args)
	}
}

func (l *Logger) write(dst *log.Logger, lv level, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	if l.fields != "" {
		msg += " " + l.fields
	}
	dst.Printf("[%s] %s%-5s\033[0m %s", time.Now().Format("2006-01-02 15:04:05"), lv.color, lv.tag, msg)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFrom returns the request-scoped logger stored in ctx, or fallback.
func loggerFrom(ctx context.Context, fallback *Logger) *Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
		return l
	}
	return fallback
}
