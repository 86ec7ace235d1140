package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/evanschultz/orderboard/internal/config"
)

const (
	defaultDevLogDir  = ".orderboard/log"
	defaultLogStem    = "orderboard"
	devLogDateLayout  = "20060102"
	logTimestampStyle = time.RFC3339
)

// runtimeLogger fans log events to a styled console sink and an optional dev-file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	devLog         string
}

func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig, now func() time.Time) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if now == nil {
		now = time.Now
	}
	if stderr == nil {
		stderr = io.Discard
	}

	console := newSink(stderr, appName, level, charmLog.TextFormatter)
	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{console},
		consoleSink:    console,
		consoleEnabled: true,
	}
	if !devMode || !cfg.DevFile.Enabled {
		return logger, nil
	}

	path, err := devLogFilePath(cfg.DevFile.Dir, appName, now().UTC())
	if err != nil {
		return nil, fmt.Errorf("resolve dev log file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}
	// logfmt keeps the file greppable; the console keeps its colours
	logger.sinks = append(logger.sinks, newSink(file, appName, level, charmLog.LogfmtFormatter))
	logger.closeFile = file.Close
	logger.devLog = path
	return logger, nil
}

func newSink(w io.Writer, prefix string, level charmLog.Level, formatter charmLog.Formatter) *charmLog.Logger {
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      logTimestampStyle,
		Formatter:       formatter,
	})
}

// DevLogPath returns the active dev log file, or "" when file logging is off.
func (l *runtimeLogger) DevLogPath() string {
	if l == nil {
		return ""
	}
	return l.devLog
}

func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	err := l.closeFile()
	l.closeFile = nil
	return err
}

// SetConsoleEnabled mutes or restores the console sink.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil || sink == nil {
		return false
	}
	return sink != l.consoleSink || l.consoleEnabled
}

func (l *runtimeLogger) emit(level charmLog.Level, msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if l.shouldLogToSink(sink) {
			sink.Log(level, msg, keyvals...)
		}
	}
}

func (l *runtimeLogger) Debug(msg string, keyvals ...any) { l.emit(charmLog.DebugLevel, msg, keyvals...) }
func (l *runtimeLogger) Info(msg string, keyvals ...any)  { l.emit(charmLog.InfoLevel, msg, keyvals...) }
func (l *runtimeLogger) Warn(msg string, keyvals ...any)  { l.emit(charmLog.WarnLevel, msg, keyvals...) }
func (l *runtimeLogger) Error(msg string, keyvals ...any) { l.emit(charmLog.ErrorLevel, msg, keyvals...) }

// devLogFilePath places the day's log file under dir, resolved against the enclosing workspace.
func devLogFilePath(dir, appName string, now time.Time) (string, error) {
	baseDir := strings.TrimSpace(dir)
	if baseDir == "" {
		baseDir = defaultDevLogDir
	}
	if !filepath.IsAbs(baseDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working dir: %w", err)
		}
		baseDir = filepath.Join(workspaceRootFrom(cwd), baseDir)
	}
	name := fmt.Sprintf("%s-%s.log", sanitizeLogFileStem(appName), now.Format(devLogDateLayout))
	return filepath.Join(filepath.Clean(baseDir), name), nil
}

// workspaceRootFrom walks up from start to the nearest directory holding go.mod or .git.
func workspaceRootFrom(start string) string {
	start = filepath.Clean(strings.TrimSpace(start))
	if start == "" {
		return "."
	}
	for dir := start; ; {
		if hasWorkspaceMarker(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func hasWorkspaceMarker(dir string) bool {
	for _, marker := range []string{"go.mod", ".git"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func sanitizeLogFileStem(appName string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "-")
	stem := strings.Trim(replacer.Replace(strings.TrimSpace(appName)), "-")
	if stem == "" {
		return defaultLogStem
	}
	return stem
}
