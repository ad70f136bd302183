package reschedule_booking

import (
	"time"

	"github.com/rings-s/booking/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64
	UserID    int64 // клиент брони или владелец компании
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response перенесенное бронирование
type Response struct {
	ID          int64
	BusinessID  int64
	ServiceID   int64
	CustomerID  int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string

	PreviousDate      time.Time
	PreviousStartTime types.TimeString
}
