package logger

import (
	"fmt"
	"testing"
)

// TestLoggerConsoleOutput exercises all levels and field handling; output
// goes to the console.
func TestLoggerConsoleOutput(t *testing.T) {
	log := NewDefaultLogger()

	log.Debug("Debug message")
	log.Info("Info message")
	log.Info(fmt.Sprintf("Info formatted: %s", "test"))
	log.Error("Error message")

	withFields := log.WithFields(map[string]interface{}{
		"key1": "value1",
		"key2": 42,
	})
	withFields.Info("Message with fields")

	jsonLog := NewJSONLogger()
	jsonLog.Info("JSON logger test")
	jsonLog.WithFields(map[string]interface{}{
		"component": "test",
	}).Info("JSON logger with fields")
}

func TestShouldLog_LevelFiltering(t *testing.T) {
	l := NewLogger(Config{Level: "INFO"}).(*defaultLogger)

	if l.shouldLog("DEBUG") {
		t.Error("DEBUG should be filtered at INFO level")
	}
	if !l.shouldLog("INFO") {
		t.Error("INFO should pass at INFO level")
	}
	if !l.shouldLog("ERROR") {
		t.Error("ERROR should pass at INFO level")
	}
}

func TestShouldLog_UnknownConfigLevelDefaultsToDebug(t *testing.T) {
	l := NewLogger(Config{Level: "VERBOSE"}).(*defaultLogger)
	if !l.shouldLog("DEBUG") {
		t.Error("unknown config level should default to DEBUG")
	}
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	parent := NewDefaultLogger().(*defaultLogger)
	child := parent.WithFields(map[string]interface{}{"k": "v"}).(*defaultLogger)

	if len(parent.fields) != 0 {
		t.Errorf("parent fields mutated: %v", parent.fields)
	}
	if child.fields["k"] != "v" {
		t.Errorf("child fields = %v, want k=v", child.fields)
	}

	grandchild := child.WithFields(map[string]interface{}{"k": "override"}).(*defaultLogger)
	if grandchild.fields["k"] != "override" {
		t.Errorf("new fields should override, got %v", grandchild.fields)
	}
	if child.fields["k"] != "v" {
		t.Errorf("child fields mutated by grandchild: %v", child.fields)
	}
}
