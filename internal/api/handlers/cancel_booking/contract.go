package cancel_booking

import (
	"context"

	"github.com/rings-s/booking/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
