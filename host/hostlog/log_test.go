package hostlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogLevel(t *testing.T) {
	original := GetLogLevel()
	defer SetLogLevel(original)

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		SetLogLevel(level)
		if got := GetLogLevel(); got != level {
			t.Errorf("GetLogLevel() = %v, want %v", got, level)
		}
	}
}

func TestComponentAttribute(t *testing.T) {
	original := DefaultLogger
	defer func() { DefaultLogger = original }()
	level := GetLogLevel()
	defer SetLogLevel(level)

	var buf bytes.Buffer
	DefaultLogger = NewLogger(&buf, LogFormatJSON)
	SetLogLevel(slog.LevelDebug)

	LogInfo(ComponentProbe, "loopback", "size", 64)
	out := buf.String()
	if !strings.Contains(out, `"component":"probe"`) {
		t.Errorf("missing component: %s", out)
	}
	if !strings.Contains(out, `"size":64`) {
		t.Errorf("missing attribute: %s", out)
	}
}

func TestLevelFilter(t *testing.T) {
	original := DefaultLogger
	defer func() { DefaultLogger = original }()
	level := GetLogLevel()
	defer SetLogLevel(level)

	var buf bytes.Buffer
	DefaultLogger = NewLogger(&buf, LogFormatText)
	SetLogLevel(slog.LevelWarn)

	LogDebug(ComponentUSB, "hidden")
	LogWarn(ComponentUSB, "shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug message passed warn filter: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn message dropped: %s", buf.String())
	}
}

func TestConsoleStatus(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	if got := c.Status("ok", true); got != "ok" {
		t.Errorf("plain console colored output: %q", got)
	}

	c.color = true
	if got := c.Status("FAIL", false); got != ansiRed+"FAIL"+ansiReset {
		t.Errorf("Status = %q", got)
	}
}

func TestLogErrorAlwaysShown(t *testing.T) {
	original := DefaultLogger
	defer func() { DefaultLogger = original }()
	level := GetLogLevel()
	defer SetLogLevel(level)

	var buf bytes.Buffer
	DefaultLogger = NewLogger(&buf, LogFormatJSON)
	SetLogLevel(slog.LevelWarn)

	LogError(ComponentCLI, "fatal", "err", "no such device")
	out := buf.String()
	if !strings.Contains(out, `"level":"ERROR"`) || !strings.Contains(out, `"component":"cli"`) {
		t.Errorf("unexpected error record: %s", out)
	}
	if !strings.Contains(out, `"err":"no such device"`) {
		t.Errorf("missing error attribute: %s", out)
	}
}
