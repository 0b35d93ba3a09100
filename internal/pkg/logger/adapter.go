package logger

import (
	"log/slog"

	"nft_aggregator/internal/app/port"
)

// slogAdapter реализует интерфейс port.Logger поверх slog.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter возвращает port.Logger, пишущий в глобальный логгер пакета.
func NewSlogAdapter() port.Logger {
	ensureInitialized()
	return &slogAdapter{l: globalLogger}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.l.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.l.Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.l.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.l.Error(msg, args...)
}

// With возвращает логгер с добавленными полями.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{l: a.l.With(args...)}
}
