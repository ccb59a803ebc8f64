package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Logger is the key/value logging contract shared by handlers and use cases.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
	With(keysAndValues ...any) Logger
}

// FileNameLayout names one log file per process start, e.g. 10_19_2026_15_04_05.log.
const FileNameLayout = "01_02_2006_15_04_05"

type slogLogger struct {
	l *slog.Logger
}

// New returns a Logger writing text records to w.
func New(w io.Writer, name string) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true})
	return &slogLogger{l: slog.New(h).With("logger", name)}
}

// NewFile creates dir if needed and returns a Logger that writes to stdout and
// to a fresh append-only file named after now. The caller closes the file.
func NewFile(dir, name string, now time.Time) (Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, now.Format(FileNameLayout)+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(io.MultiWriter(os.Stdout, f), name), f, nil
}

// Discard drops every record. Used in tests.
func Discard() Logger { return New(io.Discard, "discard") }

func (s *slogLogger) Info(msg string, kv ...any)  { s.log(slog.LevelInfo, msg, kv...) }
func (s *slogLogger) Warn(msg string, kv ...any)  { s.log(slog.LevelWarn, msg, kv...) }
func (s *slogLogger) Error(msg string, kv ...any) { s.log(slog.LevelError, msg, kv...) }
func (s *slogLogger) Debug(msg string, kv ...any) { s.log(slog.LevelDebug, msg, kv...) }

// log attributes the record to the caller of Info/Warn/Error/Debug.
func (s *slogLogger) log(level slog.Level, msg string, kv ...any) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // runtime.Callers, log, exported method
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(kv...)
	_ = s.l.Handler().Handle(ctx, r)
}

func (s *slogLogger) With(kv ...any) Logger { return &slogLogger{l: s.l.With(kv...)} }
