// Package logger wraps logrus with the level/format/output knobs the
// scan engine needs, following the teacher's LoggerManager shape.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"neoscan/internal/config"
)

// Manager owns the configured logrus instance.
type Manager struct {
	logger *logrus.Logger
	config *config.LogConfig
}

// Instance is the process-wide logger, set by Init.
var Instance *Manager

// Init builds a Manager from cfg and installs it as the package instance.
func Init(cfg *config.LogConfig) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		l.Warnf("invalid log level %q, defaulting to info", cfg.Level)
	}
	l.SetLevel(level)

	if err := setFormatter(l, cfg); err != nil {
		return nil, err
	}
	if err := setOutput(l, cfg); err != nil {
		return nil, err
	}
	l.SetReportCaller(cfg.Caller)

	m := &Manager{logger: l, config: cfg}
	Instance = m
	return m, nil
}

func setFormatter(l *logrus.Logger, cfg *config.LogConfig) error {
	const timestampFormat = "2006-01-02 15:04:05.000"

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}

func setOutput(l *logrus.Logger, cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Output) {
	case "stdout", "":
		l.SetOutput(os.Stdout)
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		if cfg.FilePath == "" {
			return fmt.Errorf("file path is required when output is file")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		if strings.EqualFold(cfg.Level, "debug") {
			l.SetOutput(io.MultiWriter(os.Stdout, rotator))
		} else {
			l.SetOutput(rotator)
		}
	default:
		return fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
	return nil
}

// Raw returns the underlying logrus logger.
func (m *Manager) Raw() *logrus.Logger { return m.logger }

func entry() *logrus.Entry {
	if Instance != nil {
		return logrus.NewEntry(Instance.logger)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func Debugf(format string, args ...interface{}) { entry().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { entry().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { entry().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { entry().Errorf(format, args...) }

func WithField(key string, value interface{}) *logrus.Entry {
	return entry().WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return entry().WithFields(fields)
}
