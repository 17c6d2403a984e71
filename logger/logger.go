// Package logger owns the process-wide zap logger.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Init configures the global logger. When path is non-empty, logs are also
// written to a rotated file there.
func Init(level, path string) {
	once.Do(func() {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = zapcore.InfoLevel
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			lvl,
		)

		core := consoleCore
		if path != "" {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(&lumberjack.Logger{
					Filename:   path,
					MaxSize:    50, // megabytes
					MaxBackups: 5,
					MaxAge:     30, // days
				}),
				lvl,
			)
			core = zapcore.NewTee(consoleCore, fileCore)
		}

		global = zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
	})
}

// L returns the global logger, initializing a default one if Init was never
// called.
func L() *zap.Logger {
	if global == nil {
		Init("info", "")
	}
	return global
}

// Sync flushes buffered log entries.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
