// Package logger provides verbose logging for the grimoire CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to trace the load and query pipeline.
// Warnings and errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	level             = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	tagged *zap.Logger
	plain  *zap.Logger
)

func init() {
	build(output)
}

// build wires both loggers to w. Callers hold mu.
func build(w io.Writer) {
	sink := zapcore.Lock(zapcore.AddSync(w))

	taggedCfg := zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
	}
	plainCfg := zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	}

	tagged = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(taggedCfg), sink, level))
	plain = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(plainCfg), sink, level))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	build(w)
}

// Zap returns the structured logger for adapters that log with fields.
func Zap() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return tagged
}

func logf(lvl zapcore.Level, format string, args []any) {
	if !level.Enabled(lvl) {
		return
	}
	mu.RLock()
	l := tagged
	mu.RUnlock()
	if ce := l.Check(lvl, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(zapcore.DebugLevel, format, args)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(zapcore.InfoLevel, format, args)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	logf(zapcore.WarnLevel, format, args)
}

// Error prints an error message.
func Error(format string, args ...any) {
	logf(zapcore.ErrorLevel, format, args)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	if !IsVerbose() {
		return
	}
	mu.RLock()
	l := plain
	mu.RUnlock()
	l.Info("\n=== " + name + " ===")
}
