package create_booking

import "errors"

var (
	// ErrOnlineBookingDisabled возвращается, когда компания не принимает онлайн-бронирования
	ErrOnlineBookingDisabled = errors.New("create_booking: business does not accept online bookings")

	// ErrMonthlyLimitReached возвращается, когда исчерпан месячный лимит броней тарифа
	ErrMonthlyLimitReached = errors.New("create_booking: monthly booking limit reached")

	// ErrSlotTaken возвращается, когда слот заняли конкурентной бронью
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
