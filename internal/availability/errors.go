package availability

import "errors"

// Rejection отказ в бронировании с машинно-читаемой причиной
type Rejection struct {
	Reason  string
	message string
}

func (r *Rejection) Error() string {
	return "availability: " + r.message
}

// Message текст отказа для клиента
func (r *Rejection) Message() string {
	return r.message
}

var (
	// ErrInvalidReference компания или услуга не найдены, неактивны или не связаны
	ErrInvalidReference = &Rejection{Reason: "invalid_reference", message: "unknown or inactive business or service"}

	// ErrInThePast дата и время начала уже прошли
	ErrInThePast = &Rejection{Reason: "in_the_past", message: "requested time has already passed"}

	// ErrNonPositiveDuration время окончания не позже времени начала
	ErrNonPositiveDuration = &Rejection{Reason: "non_positive_duration", message: "end time must be after start time"}

	// ErrDurationMismatch длительность не совпадает с длительностью услуги
	ErrDurationMismatch = &Rejection{Reason: "duration_mismatch", message: "duration does not match the service duration"}

	// ErrBusinessClosed компания не работает в этот день
	ErrBusinessClosed = &Rejection{Reason: "business_closed", message: "business is closed on this day"}

	// ErrOutsideBusinessHours интервал выходит за часы работы
	ErrOutsideBusinessHours = &Rejection{Reason: "outside_business_hours", message: "booking is outside business hours"}

	// ErrTimeConflict пересечение с любой активной бронью компании
	ErrTimeConflict = &Rejection{Reason: "time_conflict", message: "time conflicts with an existing booking"}

	// ErrSlotFullyBooked исчерпана вместимость слота услуги
	ErrSlotFullyBooked = &Rejection{Reason: "slot_fully_booked", message: "slot is fully booked"}

	// ErrInvalidCandidate некорректное время в заявке
	ErrInvalidCandidate = &Rejection{Reason: "invalid_input", message: "malformed booking time"}
)

// ErrInternal ошибка хранилища, не является отказом
var ErrInternal = errors.New("availability: internal error")

// ReasonOf возвращает код причины отказа или false, если err не отказ
func ReasonOf(err error) (string, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection.Reason, true
	}
	return "", false
}
