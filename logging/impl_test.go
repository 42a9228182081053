package logging

import (
	"encoding/json"
	"testing"

	"go.viam.com/test"
)

func TestObservedLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("frame", "navigable", 12)
	logger.Sublogger("terrain").Infof("hello %d", 2)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	entries := logs.All()
	test.That(t, entries[0].Message, test.ShouldEqual, "frame")
	test.That(t, entries[0].ContextMap()["navigable"], test.ShouldEqual, int64(12))
	test.That(t, entries[1].Message, test.ShouldEqual, "hello 2")
	test.That(t, entries[1].LoggerName, test.ShouldEqual, "terrain")
}

func TestSetLevel(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)

	logger.SetLevel(WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
	logger.Info("dropped")
	logger.Warn("kept")
	test.That(t, logs.Len(), test.ShouldEqual, 1)

	// subloggers share the parent's level
	sub := logger.Sublogger("child")
	sub.Info("also dropped")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	logger.SetLevel(DEBUG)
	sub.Debug("now kept")
	test.That(t, logs.Len(), test.ShouldEqual, 2)
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
	} {
		lvl, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, lvl, test.ShouldEqual, tc.out)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLevelJSON(t *testing.T) {
	var cfg struct {
		Level Level `json:"level"`
	}
	test.That(t, json.Unmarshal([]byte(`{"level":"warn"}`), &cfg), test.ShouldBeNil)
	test.That(t, cfg.Level, test.ShouldEqual, WARN)

	out, err := json.Marshal(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `{"level":"warn"}`)

	test.That(t, json.Unmarshal([]byte(`{"level":"nope"}`), &cfg), test.ShouldNotBeNil)
}
