// Package logging builds the zap logger handed to every component.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006/01/02 15:04:05"

type Config struct {
	Development bool   `yaml:"development" mapstructure:"development"`
	Level       string `yaml:"level" mapstructure:"level"`
	// File receives the log, stderr when empty. The TUI owns the terminal,
	// so it always logs to a file.
	File string `yaml:"file" mapstructure:"file"`
}

// New builds a console logger with colored levels in development and a
// JSON logger otherwise.
func New(c Config) (*zap.Logger, error) {
	var config zap.Config
	if c.Development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)

	if c.Level != "" {
		lvl, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		config.Level = lvl
	}

	out := "stderr"
	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0o700); err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		out = c.File
		// colors only make sense on a terminal
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	config.OutputPaths = []string{out}
	config.ErrorOutputPaths = []string{out}

	return config.Build()
}

// Sync flushes log, ignoring the error syncing stderr gives on some
// platforms
func Sync(log *zap.Logger) {
	_ = log.Sync()
}
