package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("wrote diagram") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("laid out panel") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("laid out panel") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("row skipped") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("wrote diagram", "panel", "Main Hall", "format", "png")

	out := buf.String()
	for _, want := range []string{"INFO", "wrote diagram", `panel="Main Hall"`, "format=png"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Read export", "panels", 3)

	out := buf.String()
	for _, want := range []string{"Read export", "panels=3", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestProgressBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.WarnLevel))
	prog.done("quiet")
	if buf.Len() != 0 {
		t.Errorf("info progress written at warn level: %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Fatal("loggerFromContext did not return the attached logger")
	}
	loggerFromContext(ctx).Info("attached")
	if !strings.Contains(buf.String(), "attached") {
		t.Error("attached logger did not write to its writer")
	}
}
