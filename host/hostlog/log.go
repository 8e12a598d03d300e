// Package hostlog is the structured logger shared by the host tools.
package hostlog

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Component identifies a host subsystem for log filtering.
type Component string

const (
	ComponentSerial Component = "serial"
	ComponentProbe  Component = "probe"
	ComponentUSB    Component = "usb"
	ComponentSim    Component = "sim"
	ComponentCLI    Component = "cli"
)

// LogFormat specifies the output format for logging.
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

var (
	// DefaultLogger is used by the Log* helpers.
	DefaultLogger *slog.Logger

	logLevel = new(slog.LevelVar)
	logMutex sync.RWMutex
)

func init() {
	logLevel.Set(slog.LevelWarn)
	DefaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// SetLogLevel sets the minimum level for all host logging.
func SetLogLevel(level slog.Level) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logLevel.Set(level)
}

// GetLogLevel returns the current minimum level.
func GetLogLevel() slog.Level {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return logLevel.Level()
}

// SetLogFormat rebuilds the default logger on os.Stderr in the given format.
func SetLogFormat(format LogFormat) {
	logMutex.Lock()
	defer logMutex.Unlock()
	DefaultLogger = NewLogger(os.Stderr, format)
}

// NewLogger creates a logger on w sharing the package level.
func NewLogger(w io.Writer, format LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel}
	if format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func logger() *slog.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return DefaultLogger
}

// LogDebug logs a debug message with the given component.
func LogDebug(component Component, msg string, args ...any) {
	logger().Debug(msg, append([]any{"component", string(component)}, args...)...)
}

// LogInfo logs an info message with the given component.
func LogInfo(component Component, msg string, args ...any) {
	logger().Info(msg, append([]any{"component", string(component)}, args...)...)
}

// LogWarn logs a warning message with the given component.
func LogWarn(component Component, msg string, args ...any) {
	logger().Warn(msg, append([]any{"component", string(component)}, args...)...)
}

// LogError logs an error message with the given component.
func LogError(component Component, msg string, args ...any) {
	logger().Error(msg, append([]any{"component", string(component)}, args...)...)
}

// Console is the report writer for command output.
type Console struct {
	w     io.Writer
	color bool
}

// Stdout returns a console on standard output. Color is enabled only when
// stdout is a terminal.
func Stdout() *Console {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return &Console{w: colorable.NewColorableStdout(), color: true}
	}
	return &Console{w: os.Stdout}
}

// NewConsole wraps w without color.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

// Status renders s in green when ok and red otherwise, if color is on.
func (c *Console) Status(s string, ok bool) string {
	if !c.color {
		return s
	}
	if ok {
		return ansiGreen + s + ansiReset
	}
	return ansiRed + s + ansiReset
}
