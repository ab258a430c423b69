package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	// Must not panic
	l := Nop()
	l.Debug("debug", "key", "value")
	l.Info("info")
	l.Warn("warn")
	l.Error("error", "err", "boom")
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}

	var buf bytes.Buffer
	l := New(&buf, Options{})
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger unchanged")
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "info_level", verbose: false, wantDebug: false},
		{name: "debug_level", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDebug, "")

			var buf bytes.Buffer
			l := New(&buf, Options{Verbose: tt.verbose})
			l.Debug("debug message", "asset", "frida-server")
			l.Info("info message")

			out := buf.String()
			if !strings.Contains(out, "info message") {
				t.Errorf("info message missing from output: %q", out)
			}
			if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
				t.Errorf("debug message present = %v, want %v (output %q)", got, tt.wantDebug, out)
			}
		})
	}
}

func TestNew_DebugFromEnv(t *testing.T) {
	t.Setenv(EnvDebug, "1")

	var buf bytes.Buffer
	l := New(&buf, Options{})
	l.Debug("from env")

	if !strings.Contains(buf.String(), "from env") {
		t.Errorf("expected debug output when %s is set, got %q", EnvDebug, buf.String())
	}
}
