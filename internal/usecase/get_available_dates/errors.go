package get_available_dates

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда компания не найдена или неактивна
	ErrBusinessNotFound = errors.New("get_available_dates: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна или принадлежит другой компании
	ErrServiceNotFound = errors.New("get_available_dates: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
