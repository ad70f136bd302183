package domain

import "errors"

var (
	// ErrNotFound базовая ошибка отсутствия сущности. Репозитории оборачивают её
	// в свои сентинелы, слои выше проверяют errors.Is(err, domain.ErrNotFound).
	ErrNotFound = errors.New("not found")

	// ErrSlotTaken слот уже занят конкурентной бронью (нарушение уникального индекса)
	ErrSlotTaken = errors.New("slot already taken")
)
