package utils

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel enumerates severity tiers.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel maps a case-insensitive level name to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, s) {
			return LogLevel(i), nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

func (l LogLevel) zap() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a concurrency-safe, levelled logger used across the pipeline.
type Logger struct {
	inner *zap.SugaredLogger
}

var (
	globalLogger *Logger
	logOnce      sync.Once
)

// InitLogger creates the singleton logger. Call once at startup.
// stdout is always included; logFilePath is appended to when set.
func InitLogger(minLevel LogLevel, logFilePath string) *Logger {
	logOnce.Do(func() {
		outputs := []string{"stdout"}
		if logFilePath != "" {
			outputs = append(outputs, logFilePath)
		}

		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

		cfg := zap.Config{
			Level:             zap.NewAtomicLevelAt(minLevel.zap()),
			Encoding:          "console",
			EncoderConfig:     enc,
			OutputPaths:       outputs,
			ErrorOutputPaths:  []string{"stderr"},
			DisableCaller:     true,
			DisableStacktrace: true,
		}
		z, err := cfg.Build()
		if err != nil {
			// an unwritable log file must not stop the pipeline
			cfg.OutputPaths = []string{"stdout"}
			z, err = cfg.Build()
			if err != nil {
				z = zap.NewNop()
			}
			z.Sugar().Warnf("could not open log file %s, logging to stdout only", logFilePath)
		}
		globalLogger = &Logger{inner: z.Sugar()}
	})
	return globalLogger
}

// L returns the global logger, initialising a stdout-only DEBUG logger when
// InitLogger has not been called.
func L() *Logger {
	if globalLogger == nil {
		return InitLogger(DEBUG, "")
	}
	return globalLogger
}

// Close flushes any buffered entries.
func (l *Logger) Close() {
	_ = l.inner.Sync()
}

// With returns a child logger that adds key/value context to every entry.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{inner: l.inner.With(kv...)}
}

func (l *Logger) Debug(f string, a ...any) { l.inner.Debugf(f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.inner.Infof(f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.inner.Warnf(f, a...) }
func (l *Logger) Error(f string, a ...any) { l.inner.Errorf(f, a...) }
func (l *Logger) Fatal(f string, a ...any) { l.inner.Fatalf(f, a...) }
