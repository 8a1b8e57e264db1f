// Package logging builds the zap logger used across SuiteDeploy.
//
// Two cores are teed together: a console core on stderr for the operator and
// an output log file read back by "suitedeploy output", one
// "[timestamp] message" line per entry with errors prefixed "ERROR - ".
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// OutputTimeLayout is the timestamp format of the output log.
const OutputTimeLayout = "2006-01-02 15:04:05"

// Options configures New.
type Options struct {
	// Level applies to the output log file (debug, info, warn, error).
	Level string
	// Verbose lowers the console level from warn to debug.
	Verbose bool
	// File is the output log path; empty disables the file core.
	File string
	// JSON switches the console encoder to JSON.
	JSON bool
}

// New builds the logger. The returned close function syncs the logger and
// closes the output file.
func New(opts Options, console io.Writer) (*zap.Logger, func() error, error) {
	fileLevel, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	consoleLevel := zapcore.WarnLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}
	if console == nil {
		console = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(opts.JSON), zapcore.AddSync(console), consoleLevel),
	}

	var file *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open output log: %w", err)
		}
		cores = append(cores, zapcore.NewCore(OutputEncoder(), zapcore.AddSync(file), fileLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closeFn := func() error {
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}

// ParseLevel maps a config level name to a zap level; empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

func consoleEncoder(asJSON bool) zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if asJSON {
		cfg.TimeKey = "timestamp"
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// OutputEncoder renders entries the way the output log shows them:
//
//	[2024-05-01 10:00:00] mirror.ProcessLocalObjects initiated.
//	[2024-05-01 10:00:01] ERROR - mirror.ProcessLocalObjects: ...
func OutputEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format(OutputTimeLayout) + "]")
		},
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			if l >= zapcore.ErrorLevel {
				enc.AppendString("ERROR -")
			}
		},
		EncodeDuration: zapcore.StringDurationEncoder,
	})
}
