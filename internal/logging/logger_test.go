package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	l := Nop()
	// Must not panic
	l.Debug("debug", "k", "v")
	l.Info("info")
	l.Warn("warn", "k")
	l.Error("error", "k", 1)
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}

	var buf bytes.Buffer
	l := NewLogrus(&buf, "info")
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger unchanged")
	}
}

func TestLogrusLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{"info hides debug", "info", false},
		{"debug shows debug", "debug", true},
		{"unknown falls back to info", "chatty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogrus(&buf, tt.level)

			l.Debug("resolving version", "strategy", "latest-release")
			l.Info("downloading archive", "url", "https://example.com/a.tar.gz")

			out := buf.String()
			if got := strings.Contains(out, "resolving version"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v\noutput: %s", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "downloading archive") {
				t.Errorf("info line missing from output: %s", out)
			}
			if !strings.Contains(out, "url=https://example.com/a.tar.gz") {
				t.Errorf("key/value pair missing from output: %s", out)
			}
		})
	}
}

func TestFields_OddArguments(t *testing.T) {
	f := fields([]interface{}{"step", "download", "dangling"})
	if f["step"] != "download" {
		t.Errorf("step = %v, want download", f["step"])
	}
	if f["!BADKEY"] != "dangling" {
		t.Errorf("!BADKEY = %v, want dangling", f["!BADKEY"])
	}
}
