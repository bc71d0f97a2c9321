// Package logger builds the zap loggers handed to every engine subsystem.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encoding names accepted by Config.Encoding.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Config describes the logger to build. The zero value logs info and above to stderr in console format.
type Config struct {
	Level       string   `json:"level" yaml:"level"`
	Encoding    string   `json:"encoding" yaml:"encoding"`
	Development bool     `json:"development" yaml:"development"`
	OutputPaths []string `json:"outputPaths" yaml:"outputPaths"`
}

// ParseLevel converts a level name into a zap level. An empty name is info.
//
// Parameters:
//   - level: one of debug, info, warn, error, dpanic, panic, fatal (case insensitive)
//
// Returns:
//   - zapcore.Level: the parsed level
//   - error: an error if the name is not a known level
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
}

// New builds a zap logger from cfg.
//
// Parameters:
//   - cfg: the logger configuration
//
// Returns:
//   - *zap.Logger: the built logger
//   - error: an error if the level or encoding is invalid or an output cannot be opened
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(cfg.Encoding)
	if encoding == "" {
		encoding = EncodingConsole
	}
	var encoderConfig zapcore.EncoderConfig
	switch encoding {
	case EncodingConsole:
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case EncodingJSON:
		encoderConfig = zap.NewProductionEncoderConfig()
	default:
		return nil, fmt.Errorf("unknown log encoding %q", cfg.Encoding)
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
	}
	return zc.Build()
}

// NewOrNop is like New but falls back to a no-op logger on error, reporting the error alongside it.
//
// Parameters:
//   - cfg: the logger configuration
//
// Returns:
//   - *zap.Logger: the built logger, or zap.NewNop() if building failed
//   - error: the build error, if any
func NewOrNop(cfg Config) (*zap.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return zap.NewNop(), err
	}
	return l, nil
}
