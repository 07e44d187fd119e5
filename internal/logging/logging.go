// Package logging provides the semantic progress logger used by the
// governance engine. Components report task lifecycle events (start,
// update, complete, fail) and severity-bucketed summaries; formatting
// for humans happens in the output sinks, never here.
package logging

import (
	"io"
	"log/slog"
	"os"
)

type Config struct {
	Level  slog.Level
	Format string // "text" | "json"
	Output io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

func Init(cfg Config) {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ForComponent returns a logger tagged with the originating component.
func ForComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

// Task wraps a logger with start/update/complete/fail semantics so that
// long operations produce a consistent event trail.
type Task struct {
	log  *slog.Logger
	name string
}

func StartTask(log *slog.Logger, name string, args ...any) *Task {
	if log == nil {
		log = slog.Default()
	}
	t := &Task{log: log.With("task", name), name: name}
	t.log.Info("task started", args...)
	return t
}

func (t *Task) Update(msg string, args ...any) {
	t.log.Info(msg, args...)
}

func (t *Task) Complete(args ...any) {
	t.log.Info("task completed", args...)
}

func (t *Task) Fail(err error, args ...any) {
	t.log.Error("task failed", append([]any{"error", err}, args...)...)
}
