package export_business_bookings

import (
	"context"
	"io"

	"github.com/rings-s/booking/internal/service/bookings/models"
)

type BookingService interface {
	ExportBusinessBookings(ctx context.Context, req *models.ExportRequest, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
