package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// rolled log file size in megabytes, lumberjack does not support smaller units
	maxFileSizeMB = 1
	maxBackups    = 3
)

type Options struct {
	// Level for console output, the log file always receives debug messages.
	Level string
	// File is the path of the rolling log file, empty disables file logging.
	File string
	// Console is the console writer, defaults to os.Stderr.
	Console io.Writer
}

// ZapLogger writes human readable lines to the console and JSON lines to a rolling log file.
type ZapLogger struct {
	log  *zap.Logger
	file *lumberjack.Logger
}

func New(opts Options) (*ZapLogger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = ""
	consoleCfg.CallerKey = ""
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(zapcore.AddSync(console)),
			level,
		),
	}

	var file *lumberjack.Logger
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxBackups,
		}

		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			zapcore.AddSync(file),
			zapcore.DebugLevel,
		))
	}

	return &ZapLogger{
		log:  zap.New(zapcore.NewTee(cores...)),
		file: file,
	}, nil
}

func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %q", s)
	}
}

func (l *ZapLogger) Debug(_ context.Context, msg string, fields map[string]any) {
	l.log.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(_ context.Context, msg string, fields map[string]any) {
	l.log.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(_ context.Context, msg string, fields map[string]any) {
	l.log.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(_ context.Context, msg string, err error, fields map[string]any) {
	l.log.Error(msg, append(toZapFields(fields), zap.Error(err))...)
}

// Close flushes buffered entries and closes the log file.
func (l *ZapLogger) Close() error {
	_ = l.log.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func toZapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		result = append(result, zap.Any(k, fields[k]))
	}
	return result
}
