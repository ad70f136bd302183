package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не клиент брони и не владелец компании
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается для броней, которые уже не занимают время
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSlotTaken возвращается, когда слот заняли конкурентной бронью
	ErrSlotTaken = errors.New("reschedule_booking: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
