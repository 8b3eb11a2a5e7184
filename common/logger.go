// Package common provides shared constants, types, and utilities
// used across the XFCE Gala Settings application.
package common

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// AppLogger is a leveled logger writing to stderr and, optionally, a
// size-rotated file in the XDG state directory.
type AppLogger struct {
	mu          sync.Mutex
	level       LogLevel
	logger      *log.Logger
	logFile     *os.File
	maxFileSize int64
	maxBackups  int
}

// LogConfig holds configuration options for the logger.
type LogConfig struct {
	Level       LogLevel
	EnableFile  bool
	Dir         string // defaults to GetLogDir()
	MaxFileSize int64  // in bytes, default 1MB
	MaxBackups  int    // number of rotated files to keep, default 3
}

var (
	defaultLogger *AppLogger
	loggerOnce    sync.Once
)

const (
	defaultMaxFileSize = 1024 * 1024
	defaultMaxBackups  = 3
)

// GetLogger returns the singleton logger instance.
func GetLogger() *AppLogger {
	loggerOnce.Do(func() {
		defaultLogger = &AppLogger{
			level:       LevelInfo,
			logger:      log.New(os.Stderr, "", 0),
			maxFileSize: defaultMaxFileSize,
			maxBackups:  defaultMaxBackups,
		}
	})
	return defaultLogger
}

// InitLogger applies cfg to the default logger.
// Should be called early in application startup.
func InitLogger(cfg LogConfig) error {
	l := GetLogger()
	l.SetLevel(cfg.Level)

	l.mu.Lock()
	if cfg.MaxFileSize > 0 {
		l.maxFileSize = cfg.MaxFileSize
	}
	if cfg.MaxBackups > 0 {
		l.maxBackups = cfg.MaxBackups
	}
	l.mu.Unlock()

	if !cfg.EnableFile {
		return nil
	}
	dir := cfg.Dir
	if dir == "" {
		dir = GetLogDir()
	}
	return l.EnableFileLogging(dir)
}

// SetLevel sets the minimum log level.
func (l *AppLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the log output destination.
func (l *AppLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = log.New(w, "", 0)
}

// EnableFileLogging tees log output into dir/LogFileName.
// An oversized file is rotated before it is reopened.
func (l *AppLogger) EnableFileLogging(dir string) error {
	if isSymlink(dir) {
		return fmt.Errorf("log directory %s is a symlink", dir)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path := filepath.Join(dir, LogFileName)
	if isSymlink(path) {
		return fmt.Errorf("log file %s is a symlink", path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		l.logFile.Close()
		l.logFile = nil
	}
	l.rotateIfNeeded(path)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	l.logFile = file
	l.logger = log.New(io.MultiWriter(os.Stderr, file), "", 0)
	return nil
}

// rotateIfNeeded compresses path into a timestamped .gz backup once it
// reaches maxFileSize. Callers hold l.mu with the file closed.
func (l *AppLogger) rotateIfNeeded(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() < l.maxFileSize {
		return
	}

	backup := fmt.Sprintf("%s.%s.gz", path, time.Now().Format("20060102-150405"))
	if err := gzipFile(path, backup); err != nil {
		os.Rename(path, strings.TrimSuffix(backup, ".gz"))
	} else {
		os.Remove(path)
	}

	l.pruneBackups(filepath.Dir(path))
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// pruneBackups keeps the newest maxBackups rotated files.
func (l *AppLogger) pruneBackups(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, LogFileName+".*"))
	if err != nil || len(matches) <= l.maxBackups {
		return
	}

	// Backup names embed a sortable timestamp.
	sort.Strings(matches)
	for _, m := range matches[:len(matches)-l.maxBackups] {
		os.Remove(m)
	}
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// GetLogDir returns the log directory path.
func GetLogDir() string {
	return filepath.Join(xdg.StateHome, ConfigDirName, "logs")
}

// output formats one line. skip counts the frames between output and the
// code that logged.
func (l *AppLogger) output(skip int, level LogLevel, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(skip); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.Printf("%s [%s] %s: %s", time.Now().Format("2006/01/02 15:04:05"), level, caller, msg)
}

// Debug logs a debug message.
func (l *AppLogger) Debug(msg string, args ...interface{}) {
	l.output(2, LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *AppLogger) Info(msg string, args ...interface{}) {
	l.output(2, LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *AppLogger) Warn(msg string, args ...interface{}) {
	l.output(2, LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *AppLogger) Error(msg string, args ...interface{}) {
	l.output(2, LevelError, msg, args...)
}

// Shorthand functions for default logger.

// LogDebug logs a debug message to the default logger.
func LogDebug(msg string, args ...interface{}) {
	GetLogger().output(2, LevelDebug, msg, args...)
}

// LogInfo logs an info message to the default logger.
func LogInfo(msg string, args ...interface{}) {
	GetLogger().output(2, LevelInfo, msg, args...)
}

// LogWarn logs a warning message to the default logger.
func LogWarn(msg string, args ...interface{}) {
	GetLogger().output(2, LevelWarn, msg, args...)
}

// LogError logs an error message to the default logger.
func LogError(msg string, args ...interface{}) {
	GetLogger().output(2, LevelError, msg, args...)
}

// Close closes the log file. Should be called on application shutdown.
func (l *AppLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	l.logger = log.New(os.Stderr, "", 0)
	return err
}

// CloseLogger closes the default logger.
func CloseLogger() error {
	return GetLogger().Close()
}
