// Package logger holds the process-wide learnnova logger. Every helper is
// safe to call before Init, so library code can log unconditionally.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/learnnova/internal/constants"
)

const (
	logDirName    = "logs"
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 28

	requestIDPrefixLen = 8
)

var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr mirrors output to stderr at info level, used by chat serve.
	Stderr bool
}

func (c Config) level() log.Level {
	switch {
	case c.Debug:
		return log.DebugLevel
	case c.Stderr:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// FilePath is where Init writes the rotating log for configDir.
func FilePath(configDir string) string {
	return filepath.Join(configDir, logDirName, constants.AppName+".log")
}

func Init(cfg Config) error {
	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
	if cfg.Debug || cfg.Stderr {
		out = io.MultiWriter(os.Stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           cfg.level(),
		Prefix:          constants.AppName,
	})
	return nil
}

// With returns a child logger carrying keyvals, or nil before Init.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.With(keyvals...)
}

// Request returns a logger for one chat request. The short request ID is
// appended to the prefix so lines from one request line up in the log.
// Before Init it discards everything.
func Request(id string) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	short := id
	if len(short) > requestIDPrefixLen {
		short = short[:requestIDPrefixLen]
	}
	if short == "" {
		return Logger
	}
	return Logger.WithPrefix(constants.AppName + " " + short)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
