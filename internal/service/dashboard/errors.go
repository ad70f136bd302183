package dashboard

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = errors.New("dashboard: business not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец компании
	ErrAccessDenied = errors.New("dashboard: access denied")

	// ErrInvalidInput возвращается при некорректном периоде
	ErrInvalidInput = errors.New("dashboard: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("dashboard: internal error")
)
