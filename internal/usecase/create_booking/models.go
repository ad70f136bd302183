package create_booking

import (
	"time"

	"github.com/rings-s/booking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID    int64            // ID пользователя-клиента
	BusinessID    int64            // ID компании
	ServiceID     int64            // ID услуги
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала, "10:00"
	EndTime       types.TimeString // Время окончания, "11:00"
	Notes         *string          // Заметки (опционально)
	PaymentMethod *string          // Способ оплаты (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	CustomerID    int64
	BusinessID    int64
	ServiceID     int64
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        string
	TotalPrice    float64
	IsPaid        bool
	Notes         *string
	PaymentMethod *string

	// Денормализованные данные
	ServiceName  string
	BusinessName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
