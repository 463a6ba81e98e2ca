// Package host defines the capabilities the media-center host supplies:
// directory rendering, dialogs, notifications and playback.
package host

//go:generate mockgen -destination=mocks/mock_host.go -package=mocks . Presenter,Dialogs,Notifier,Player

import (
	"context"
	"log/slog"
)

// Presenter renders a directory listing.
type Presenter interface {
	Render(ctx context.Context, dir Directory) error
}

// Dialogs asks the user to pick one of several options.
// ok is false when the user cancels.
type Dialogs interface {
	Select(heading string, options []string) (index int, ok bool)
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Player hands items off to the host's playback and search facilities.
type Player interface {
	Play(ctx context.Context, path string) error
	GlobalSearch(ctx context.Context, query string) error
}

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-visible message.
type Notification struct {
	Level   Level
	Heading string
	Message string
}

// MultiNotifier delivers every notification to each of its notifiers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// LogNotifier records notifications in the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	switch n.Level {
	case LevelWarning:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	}
	logger.Log(ctx, level, "notification", "heading", n.Heading, "message", n.Message)
}
