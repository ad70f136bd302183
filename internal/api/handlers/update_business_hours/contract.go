package update_business_hours

import (
	"context"

	"github.com/rings-s/booking/internal/service/businesshours/models"
)

type HoursService interface {
	UpdateHours(ctx context.Context, req *models.UpdateHoursRequest) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
