package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zap.InfoLevel, false},
		{"DEBUG", zap.DebugLevel, false},
		{"warning", zap.WarnLevel, false},
		{" error ", zap.ErrorLevel, false},
		{"trace", zap.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_BadOptions(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("New with format xml succeeded, want error")
	}
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("New with level loud succeeded, want error")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcexam.log")
	l, err := New(Options{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hidden")
	l.Info("graded", zap.String("question", "der-chain"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"question":"der-chain"`) {
		t.Errorf("log file missing field:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestNewQuiet(t *testing.T) {
	l, err := NewQuiet(Options{})
	if err != nil {
		t.Fatalf("NewQuiet: %v", err)
	}
	if l.Core().Enabled(zap.ErrorLevel) {
		t.Error("NewQuiet without a file is not a no-op logger")
	}
}
