package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"garbage", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			z, err := New(tt.in)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", tt.in, err)
			}
			if !z.Core().Enabled(tt.want) {
				t.Errorf("level %v should be enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && z.Core().Enabled(tt.want-1) {
				t.Errorf("level %v should be disabled", tt.want-1)
			}
		})
	}
}

func TestSlogAdapterWritesToZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	InitSlog(zap.New(core))

	l := NewSlogAdapter().With("route", "/api/v1/collections")
	l.Info("request served", "status", 200)
	l.Debug("debug line")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "request served" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["route"] != "/api/v1/collections" {
		t.Errorf("expected route field, got %v", fields)
	}
	if entries[1].Level != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %v", entries[1].Level)
	}
}

func TestGlobalHelpersRespectLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	InitSlog(zap.New(core))

	Debug("hidden")
	Info("hidden")
	Warn("shown")
	Error("shown too")

	if got := logs.Len(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}
