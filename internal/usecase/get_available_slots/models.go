package get_available_slots

import (
	"time"

	"github.com/rings-s/booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID компании
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date       time.Time
	BusinessID int64
	ServiceID  int64
	Slots      []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	EndTime        types.TimeString // Время окончания слота
	AvailableSpots int              // Количество свободных мест, 0 - слот занят
}
