package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerbosityGating(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		wantInfo  bool
		wantDebug bool
		wantTrace bool
	}{
		{"quiet", LevelQuiet, false, false, false},
		{"info", LevelInfo, true, false, false},
		{"debug", LevelDebug, true, true, false},
		{"trace", LevelTrace, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Initialize(tt.level, &buf)

			Info("info line")
			Debug("debug line")
			Trace("trace line")

			out := buf.String()
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info emitted = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "trace line"); got != tt.wantTrace {
				t.Errorf("trace emitted = %v, want %v", got, tt.wantTrace)
			}
		})
	}
}

func TestWarnAlwaysVisible(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelQuiet, &buf)

	Warn("warn line")
	Error("error line")

	out := buf.String()
	if !strings.Contains(out, "warn line") || !strings.Contains(out, "error line") {
		t.Errorf("warn/error should always be emitted, got: %s", out)
	}
}

func TestIsDebug(t *testing.T) {
	var buf bytes.Buffer

	Initialize(LevelInfo, &buf)
	if IsDebug() {
		t.Error("IsDebug() at info level = true, want false")
	}
	Initialize(LevelDebug, &buf)
	if !IsDebug() {
		t.Error("IsDebug() at debug level = false, want true")
	}
	if Verbosity() != LevelDebug {
		t.Errorf("Verbosity() = %d, want %d", Verbosity(), LevelDebug)
	}
}
