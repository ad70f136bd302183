package businesshours

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = errors.New("businesshours: business not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец компании
	ErrAccessDenied = errors.New("businesshours: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("businesshours: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("businesshours: internal error")
)
