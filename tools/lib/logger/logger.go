// Copyright 2018 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger provides methods for logging with different levels.
package logger

import (
	"context"
	"fmt"
	"io"
	goLog "log"
	"os"

	"go.compdbgen.dev/compdbgen/tools/lib/color"
)

type globalLoggerKeyType struct{}

// WithLogger returns the context with its logger set as the provided Logger.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, globalLoggerKeyType{}, logger)
}

// LoggerFromContext returns the context logger if configured, otherwise nil.
func LoggerFromContext(ctx context.Context) *Logger {
	if v, ok := ctx.Value(globalLoggerKeyType{}).(*Logger); ok && v != nil {
		return v
	}
	return nil
}

// LogLevel represents different levels for logging depending on the amount of detail wanted.
type LogLevel int

const (
	NoLogLevel LogLevel = iota
	FatalLevel
	ErrorLevel
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

var levelNames = []string{
	NoLogLevel:   "no",
	FatalLevel:   "fatal",
	ErrorLevel:   "error",
	WarningLevel: "warning",
	InfoLevel:    "info",
	DebugLevel:   "debug",
	TraceLevel:   "trace",
}

// String returns the name of the LogLevel, or an empty string if it has none.
func (l *LogLevel) String() string {
	if *l < 0 || int(*l) >= len(levelNames) {
		return ""
	}
	return levelNames[*l]
}

// Set sets the LogLevel based on its name.
func (l *LogLevel) Set(s string) error {
	for level, name := range levelNames {
		if name == s {
			*l = LogLevel(level)
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid level", s)
}

// Flags accepted by SetFlags, copied from Go log so callers don't need to
// also import it.
const (
	Ltime         = goLog.Ltime
	Lmicroseconds = goLog.Lmicroseconds
	Lshortfile    = goLog.Lshortfile
	LstdFlags     = goLog.Ldate | goLog.Lmicroseconds
)

// startDepth is the call depth of a public logging method.
const startDepth = 2

// Logger writes messages at or below its LoggerLevel. Errors go to the
// error writer, everything else to the output writer.
type Logger struct {
	LoggerLevel   LogLevel
	goLogger      *goLog.Logger
	goErrorLogger *goLog.Logger
	color         color.Color
	prefix        string
}

// NewLogger creates a new logger. Nil writers default to os.Stdout and
// os.Stderr. The prefix is written at the start of every message.
func NewLogger(loggerLevel LogLevel, color color.Color, outWriter, errWriter io.Writer, prefix string) *Logger {
	if outWriter == nil {
		outWriter = os.Stdout
	}
	if errWriter == nil {
		errWriter = os.Stderr
	}
	return &Logger{
		LoggerLevel:   loggerLevel,
		goLogger:      goLog.New(outWriter, "", LstdFlags),
		goErrorLogger: goLog.New(errWriter, "", LstdFlags),
		color:         color,
		prefix:        prefix,
	}
}

// SetFlags sets the output flags for the logger.
func (l *Logger) SetFlags(flags int) {
	l.goLogger.SetFlags(flags)
	l.goErrorLogger.SetFlags(flags)
}

func (l *Logger) tag(level LogLevel) string {
	switch level {
	case FatalLevel:
		return l.color.Red("FATAL: ")
	case ErrorLevel:
		return l.color.Red("ERROR: ")
	case WarningLevel:
		return l.color.Yellow("WARN: ")
	case DebugLevel:
		return l.color.Cyan("DEBUG: ")
	case TraceLevel:
		return l.color.Blue("TRACE: ")
	}
	return ""
}

func (l *Logger) output(callDepth int, level LogLevel, format string, a ...interface{}) {
	if level == NoLogLevel || level > l.LoggerLevel {
		return
	}
	w := l.goLogger
	if level <= ErrorLevel {
		w = l.goErrorLogger
	}
	w.Output(callDepth+1, l.prefix+l.tag(level)+fmt.Sprintf(format, a...))
}

// Infof logs the string if the logger is at least InfoLevel.
func (l *Logger) Infof(format string, a ...interface{}) {
	l.output(startDepth, InfoLevel, format, a...)
}

// Debugf logs the string if the logger is at least DebugLevel.
func (l *Logger) Debugf(format string, a ...interface{}) {
	l.output(startDepth, DebugLevel, format, a...)
}

// Tracef logs the string if the logger is at least TraceLevel.
func (l *Logger) Tracef(format string, a ...interface{}) {
	l.output(startDepth, TraceLevel, format, a...)
}

// Warningf logs the string if the logger is at least WarningLevel.
func (l *Logger) Warningf(format string, a ...interface{}) {
	l.output(startDepth, WarningLevel, format, a...)
}

// Errorf logs the string if the logger is at least ErrorLevel.
func (l *Logger) Errorf(format string, a ...interface{}) {
	l.output(startDepth, ErrorLevel, format, a...)
}

// Logf logs through the context logger, or the standard Go logger if the
// context has none.
func Logf(ctx context.Context, logLevel LogLevel, format string, a ...interface{}) {
	logf(startDepth, ctx, logLevel, format, a...)
}

func logf(callDepth int, ctx context.Context, logLevel LogLevel, format string, a ...interface{}) {
	if v := LoggerFromContext(ctx); v != nil {
		v.output(callDepth+1, logLevel, format, a...)
		return
	}
	goLog.Output(callDepth+1, fmt.Sprintf(format, a...))
}

// Infof logs the string with the context logger at InfoLevel.
func Infof(ctx context.Context, format string, a ...interface{}) {
	logf(startDepth, ctx, InfoLevel, format, a...)
}

// Debugf logs the string with the context logger at DebugLevel.
func Debugf(ctx context.Context, format string, a ...interface{}) {
	logf(startDepth, ctx, DebugLevel, format, a...)
}

// Tracef logs the string with the context logger at TraceLevel.
func Tracef(ctx context.Context, format string, a ...interface{}) {
	logf(startDepth, ctx, TraceLevel, format, a...)
}

// Warningf logs the string with the context logger at WarningLevel.
func Warningf(ctx context.Context, format string, a ...interface{}) {
	logf(startDepth, ctx, WarningLevel, format, a...)
}

// Errorf logs the string with the context logger at ErrorLevel.
func Errorf(ctx context.Context, format string, a ...interface{}) {
	logf(startDepth, ctx, ErrorLevel, format, a...)
}
