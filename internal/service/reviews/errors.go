package reviews

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("reviews: review not found")

	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = errors.New("reviews: business not found")

	// ErrAlreadyReviewed возвращается при повторном отзыве на ту же бронь
	ErrAlreadyReviewed = errors.New("reviews: booking already reviewed")

	// ErrAccessDenied возвращается, когда пользователь не владелец компании
	ErrAccessDenied = errors.New("reviews: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reviews: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews: internal error")
)
