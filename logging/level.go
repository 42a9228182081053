package logging

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Level is an enum of log levels. Its value can be `DEBUG`, `INFO`, `WARN` or `ERROR`.
type Level int

const (
	// DEBUG log level.
	DEBUG Level = iota - 1
	// INFO log level.
	INFO
	// WARN log level.
	WARN
	// ERROR log level.
	ERROR
)

func (level Level) String() string {
	switch level {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	}
	panic(errors.Errorf("unknown level value: %d", level))
}

// LevelFromString parses an input string to a log level. The string must be one of `debug`,
// `info`, `warn` or `error`. The parsing is case-insensitive. An error is returned if the input
// does not match one of labeled cases.
func LevelFromString(inp string) (Level, error) {
	switch strings.ToLower(inp) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return DEBUG, errors.Errorf("unknown log level: %q", inp)
}

// AsZap converts the Level to a `zapcore.Level`.
func (level Level) AsZap() zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	}
	panic(errors.Errorf("unknown level value: %d", level))
}

// MarshalJSON converts a log level to a json string.
func (level Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(level.String()))
}

// UnmarshalJSON converts a json string to a log level.
func (level *Level) UnmarshalJSON(data []byte) (err error) {
	var levelStr string
	if err := json.Unmarshal(data, &levelStr); err != nil {
		return err
	}
	*level, err = LevelFromString(levelStr)
	return err
}

// UnmarshalText lets yaml and other text decoders read a log level.
func (level *Level) UnmarshalText(text []byte) (err error) {
	*level, err = LevelFromString(string(text))
	return err
}
