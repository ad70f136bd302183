package get_business_chart

import (
	"context"

	"github.com/rings-s/booking/internal/service/dashboard/models"
)

type DashboardService interface {
	ChartData(ctx context.Context, businessID, userID int64, period string) (*models.ChartResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
