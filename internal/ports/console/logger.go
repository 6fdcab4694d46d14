package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sort"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Logger adapts slog to runtime.Logger so code written for the Nakama
// runtime runs in the CLI unchanged.
type Logger struct {
	slog   *slog.Logger
	fields map[string]interface{}
}

// New writes text records at level and above to w.
func New(w io.Writer, level slog.Level) *Logger {
	return &Logger{slog: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (l *Logger) log(level slog.Level, format string, v ...interface{}) {
	if !l.slog.Enabled(context.Background(), level) {
		return
	}
	l.slog.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(format string, v ...interface{}) { l.log(slog.LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.log(slog.LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.log(slog.LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.log(slog.LevelError, format, v...) }

func (l *Logger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

func (l *Logger) WithFields(fields map[string]interface{}) runtime.Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, fields[k])
	}

	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]interface{}, len(fields))
	}
	maps.Copy(merged, fields)
	return &Logger{slog: l.slog.With(args...), fields: merged}
}

func (l *Logger) Fields() map[string]interface{} {
	return maps.Clone(l.fields)
}

var _ runtime.Logger = (*Logger)(nil)
