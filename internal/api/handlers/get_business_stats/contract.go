package get_business_stats

import (
	"context"

	"github.com/rings-s/booking/internal/service/dashboard/models"
)

type DashboardService interface {
	Stats(ctx context.Context, businessID, userID int64, period string) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
