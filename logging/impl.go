package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface for logging to.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})

	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})

	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a child logger sharing this logger's level and outputs.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	Desugar() *zap.Logger
	Sync() error
}

type impl struct {
	name   string
	level  zap.AtomicLevel
	logger *zap.SugaredLogger
}

func (imp *impl) Desugar() *zap.Logger {
	return imp.logger.Desugar()
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level {
	switch imp.level.Level() {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.InfoLevel:
		return INFO
	case zapcore.WarnLevel:
		return WARN
	default:
		return ERROR
	}
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = imp.name + "." + subname
	}
	return &impl{
		name:   newName,
		level:  imp.level,
		logger: imp.logger.Named(subname),
	}
}

func (imp *impl) Sync() error {
	return imp.logger.Sync()
}

func (imp *impl) Debug(args ...interface{}) {
	imp.logger.Debug(args...)
}

func (imp *impl) Debugf(template string, args ...interface{}) {
	imp.logger.Debugf(template, args...)
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.logger.Debugw(msg, keysAndValues...)
}

func (imp *impl) Info(args ...interface{}) {
	imp.logger.Info(args...)
}

func (imp *impl) Infof(template string, args ...interface{}) {
	imp.logger.Infof(template, args...)
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.logger.Infow(msg, keysAndValues...)
}

func (imp *impl) Warn(args ...interface{}) {
	imp.logger.Warn(args...)
}

func (imp *impl) Warnf(template string, args ...interface{}) {
	imp.logger.Warnf(template, args...)
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.logger.Warnw(msg, keysAndValues...)
}

func (imp *impl) Error(args ...interface{}) {
	imp.logger.Error(args...)
}

func (imp *impl) Errorf(template string, args ...interface{}) {
	imp.logger.Errorf(template, args...)
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.logger.Errorw(msg, keysAndValues...)
}
