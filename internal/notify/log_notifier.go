package notify

import (
	"context"

	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/logger"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) {
	ctx = n.logg.WithFields(ctx, map[string]any{
		"level_hint":  string(notification.Level),
		"title":       notification.Title,
		"description": notification.Description,
	})

	if notification.Level == domain.NotificationError {
		n.logg.Warn(ctx, "notification")
		return
	}
	n.logg.Info(ctx, "notification")
}
