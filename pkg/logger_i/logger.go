package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/akolanti/StudyRAG/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger resolves slog.Default on every call so loggers built at package init
// still follow the handler installed by Init.
type Logger struct {
	args []any
}

var fileSink *lumberjack.Logger

func Init() {
	options := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	var out io.Writer = os.Stdout
	if config.LogFilePath != "" {
		fileSink = &lumberjack.Logger{
			Filename:   config.LogFilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileSink)
	}

	var handler slog.Handler
	if config.IsProd {
		options.Level = config.LOG_LEVEL_PROD
		handler = slog.NewJSONHandler(out, options)

	} else {
		handler = slog.NewTextHandler(out, options)

	}
	newLogger := slog.New(handler)
	slog.SetDefault(newLogger)
}

// Close flushes and closes the rotating log file if one was opened.
func Close() error {
	if fileSink == nil {
		return nil
	}
	return fileSink.Close()
}

func NewLogger(section string) *Logger {
	return &Logger{
		args: []any{"component", section},
	}
}

func (l *Logger) inner() *slog.Logger {
	return slog.Default().With(l.args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	inner := l.inner()
	if !inner.Enabled(context.Background(), level) {
		return
	}
	inner.Log(context.Background(), level, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	merged := make([]any, 0, len(l.args)+len(args))
	merged = append(merged, l.args...)
	return &Logger{
		args: append(merged, args...),
	}
}

// WithTrace tags the logger with the trace id carried by ctx, if any.
func (l *Logger) WithTrace(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With("traceId", trace)
	}
	return l
}
