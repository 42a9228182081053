// Package logging contains the structured logger used across the rover perception stack.
package logging

import (
	"os"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewDebugLogger("startup")
)

// ReplaceGlobal replaces the global loggers.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the global logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// NewLoggerConfig returns a new default logger config.
func NewLoggerConfig() zap.Config {
	// from https://github.com/uber-go/zap/blob/2314926ec34c23ee21f3dd4399438469668f8097/config.go#L135
	// but disable stacktraces, use same keys as prod, and color levels.
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

func newStdoutLogger(name string, level Level) Logger {
	atomic := zap.NewAtomicLevelAt(level.AsZap())
	encoder := zapcore.NewConsoleEncoder(NewLoggerConfig().EncoderConfig)
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), atomic)
	return &impl{
		name:   name,
		level:  atomic,
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(name).Sugar(),
	}
}

// NewLogger returns a new logger that outputs Info+ logs to stdout.
func NewLogger(name string) Logger {
	return newStdoutLogger(name, INFO)
}

// NewDebugLogger returns a new logger that outputs Debug+ logs to stdout.
func NewDebugLogger(name string) Logger {
	return newStdoutLogger(name, DEBUG)
}

// NewTestLogger returns a new logger that outputs Debug+ logs through the test object.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also saves logs to an in memory observer.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	atomic := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	observerCore, observedLogs := observer.New(atomic)
	zl := zaptest.NewLogger(tb,
		zaptest.Level(atomic),
		zaptest.WrapOptions(
			zap.AddCaller(),
			zap.AddCallerSkip(1),
			zap.WrapCore(func(c zapcore.Core) zapcore.Core {
				return zapcore.NewTee(c, observerCore)
			}),
		),
	)
	return &impl{level: atomic, logger: zl.Sugar()}, observedLogs
}
