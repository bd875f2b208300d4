package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		opts  Options
		debug bool
	}{
		{Options{}, false},
		{Options{Verbose: true}, true},
		{Options{JSON: true}, false},
		{Options{JSON: true, Verbose: true}, true},
	}

	for _, tt := range tests {
		l, err := New(tt.opts)
		if err != nil {
			t.Fatalf("New(%+v) failed: %v", tt.opts, err)
		}
		if got := l.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Errorf("New(%+v) debug enabled = %v, expected %v", tt.opts, got, tt.debug)
		}
	}
}

func TestInstall(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Install(zap.New(core))

	zap.L().Info("hello", zap.Int("year", 2021))
	restore()
	zap.L().Info("after restore")

	if logs.Len() != 1 {
		t.Fatalf("Expected 1 captured entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "hello" {
		t.Errorf("Expected message 'hello', got %q", entry.Message)
	}
	if entry.ContextMap()["year"] != int64(2021) {
		t.Errorf("Expected year field 2021, got %v", entry.ContextMap()["year"])
	}
}
