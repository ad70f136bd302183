package read_all_notifications

import (
	"context"

	"github.com/rings-s/booking/internal/service/notifications/models"
)

type NotificationService interface {
	MarkAllRead(ctx context.Context, userID int64) (*models.AffectedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
