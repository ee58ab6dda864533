package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config captures logging configuration options.
type Config struct {
	Level string
	Dir   string
	File  string
}

var (
	colorReset = "\x1b[0m"
	colorTime  = "\x1b[90m"
	colorDebug = "\x1b[36m"
	colorInfo  = "\x1b[32m"
	colorWarn  = "\x1b[33m"
	colorError = "\x1b[31m"
)

// module tag colors for console output
var moduleColors = map[string]string{
	"[bootstrap]": "\x1b[96m",
	"[session]":   "\x1b[94m",
	"[submit]":    "\x1b[92m",
	"[api]":       "\x1b[95m",
	"[journal]":   "\x1b[36m",
}

// consoleHandler renders colored single-line output for the terminal.
type consoleHandler struct {
	writer *os.File
	level  slog.Level
	mu     sync.Mutex
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timeStr := r.Time.Format("2006-01-02 15:04:05.000")

	var levelColor, levelStr string
	switch r.Level {
	case slog.LevelDebug:
		levelColor, levelStr = colorDebug, "DEBUG"
	case slog.LevelWarn:
		levelColor, levelStr = colorWarn, "WARN"
	case slog.LevelError:
		levelColor, levelStr = colorError, "ERROR"
	default:
		levelColor, levelStr = colorInfo, "INFO"
	}

	msg := r.Message
	var output string
	if color, ok := moduleColorFor(msg); ok {
		output = fmt.Sprintf("%s[%s]%s %s%s%s",
			colorTime, timeStr, colorReset,
			color, msg, colorReset)
	} else {
		output = fmt.Sprintf("%s[%s]%s %s[%s]%s %s",
			colorTime, timeStr, colorReset,
			levelColor, levelStr, colorReset,
			msg)
	}

	if r.NumAttrs() > 0 {
		output += " {"
		r.Attrs(func(a slog.Attr) bool {
			output += fmt.Sprintf(" %s=%v", a.Key, a.Value)
			return true
		})
		output += " }"
	}
	output += "\n"

	_, err := h.writer.WriteString(output)
	return err
}

func moduleColorFor(msg string) (string, bool) {
	for tag, color := range moduleColors {
		if strings.HasPrefix(msg, tag) {
			return color, true
		}
	}
	return "", false
}

func (h *consoleHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(string) slog.Handler      { return h }

// Logger writes colored text to the console and JSON records to a file.
type Logger struct {
	jsonLogger *slog.Logger
	textLogger *slog.Logger
	logFile    *os.File
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a Logger. When cfg.Dir is empty the file sink is disabled.
func New(cfg Config) (*Logger, error) {
	level := parseLevel(cfg.Level)

	logger := &Logger{
		textLogger: slog.New(&consoleHandler{writer: os.Stdout, level: level}),
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file := cfg.File
		if file == "" {
			file = "client.log"
		}
		logPath := filepath.Join(cfg.Dir, file)
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.logFile = f
		logger.jsonLogger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	return logger, nil
}

func (l *Logger) log(level slog.Level, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	ctx := context.Background()
	l.textLogger.Log(ctx, level, msg)
	if l.jsonLogger != nil {
		l.jsonLogger.Log(ctx, level, msg)
	}
}

func (l *Logger) Debug(format string, args ...any) { l.log(slog.LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(slog.LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(slog.LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(slog.LevelError, format, args...) }

// Slog exposes the structured console logger for integrations.
func (l *Logger) Slog() *slog.Logger {
	return l.textLogger
}

// Close releases the file sink if one was opened.
func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}
