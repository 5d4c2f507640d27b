package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger      *zap.Logger
	enabled     bool
	initialized bool
	mu          sync.Mutex
)

// Init initializes the logger based on FSGATE_DEBUG env var.
// Output goes to ~/.fsgate/debug.log unless FSGATE_LOG_FILE is set; stdout
// is never used because it carries the MCP stream.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return nil
	}
	initialized = true

	if os.Getenv("FSGATE_DEBUG") != "1" {
		logger = zap.NewNop()
		return nil
	}

	logPath := os.Getenv("FSGATE_LOG_FILE")
	if logPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logPath = filepath.Join(homeDir, ".fsgate", "debug.log")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Use lumberjack for log rotation
	writeSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // Days
		Compress:   true,
	})

	logger = zap.New(newCore(writeSyncer), zap.AddCaller())
	enabled = true

	logger.Info("Debug logging started", zap.String("file", logPath))
	return nil
}

// newCore builds the console core shared by Init and tests.
func newCore(ws zapcore.WriteSyncer) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "",
		CallerKey:      "", // Hide caller for cleaner output
		MessageKey:     "M",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		ws,
		zapcore.DebugLevel,
	)
}

// SetLogger replaces the global logger. Intended for tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	enabled = true
	initialized = true
}

// IsEnabled returns whether debug logging is enabled
func IsEnabled() bool {
	return enabled
}

// Logger returns the underlying zap logger
func Logger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Sync flushes any buffered log entries
func Sync() error {
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// LogOperation logs one executed operation with its outcome.
// kind is "ok" for success, otherwise the failure taxonomy name.
func LogOperation(op, callID, path string, duration time.Duration, kind, message string) {
	if !enabled {
		return
	}
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("path", path),
		zap.Duration("duration", duration.Round(time.Microsecond)),
		zap.String("outcome", kind),
	}
	if callID != "" {
		fields = append(fields, zap.String("call_id", callID))
	}
	if message != "" {
		fields = append(fields, zap.String("error", message))
	}
	if kind == "ok" {
		logger.Debug("[op] "+op, fields...)
		return
	}
	logger.Info("[op] "+op, fields...)
}

// LogPolicyReload logs a settings reload attempt.
func LogPolicyReload(source string, err error) {
	if !enabled {
		return
	}
	if err != nil {
		logger.Warn("[policy] reload rejected, keeping previous policy", zap.String("source", source), zap.Error(err))
		return
	}
	logger.Info("[policy] reloaded", zap.String("source", source))
}

// LogError logs an error in human-readable format
func LogError(context string, err error) {
	if !enabled {
		return
	}
	logger.Error(fmt.Sprintf("!!! ERROR [%s] %v", context, err))
}
