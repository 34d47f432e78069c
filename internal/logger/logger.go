// Package logger builds the zap loggers used across the service.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr or a file path
}

func DefaultConfig() *Config {
	return &Config{Level: "debug", Format: "console", Output: "stdout"}
}

func ProductionConfig() *Config {
	return &Config{Level: "info", Format: "json", Output: "stdout"}
}

// New creates a zap logger from cfg. Unknown levels fall back to info.
func New(cfg *Config) *zap.Logger {
	core := zapcore.NewCore(encoder(cfg.Format), writer(cfg.Output), parseLevel(cfg.Level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// NewForEnvironment picks the production preset for "production" and the development one otherwise.
// Non-empty level and format override the preset.
func NewForEnvironment(env, level, format string) *zap.Logger {
	cfg := DefaultConfig()
	if env == "production" {
		cfg = ProductionConfig()
	}
	if level != "" {
		cfg.Level = level
	}
	if format != "" {
		cfg.Format = format
	}
	return New(cfg)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoder(format string) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

func writer(output string) zapcore.WriteSyncer {
	switch strings.ToLower(output) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	}
	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zapcore.AddSync(os.Stdout)
	}
	return zapcore.AddSync(f)
}
