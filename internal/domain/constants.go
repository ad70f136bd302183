package domain

// Правила доступности
const (
	// DefaultLeadTimeMinutes минимальный запас времени для бронирования на сегодня
	DefaultLeadTimeMinutes = 60
	// DurationToleranceMinutes допустимое расхождение длительности брони и услуги
	DurationToleranceMinutes = 5
	// DefaultHorizonDays глубина поиска доступных дат по умолчанию
	DefaultHorizonDays = 90
	// MaxHorizonDays максимальная глубина поиска доступных дат
	MaxHorizonDays = 365
)

// Ограничения валидации
const (
	MinServiceDurationMinutes = 15
	MinRating                 = 1
	MaxRating                 = 5
	MaxNotesLength            = 500
	MaxReviewCommentLength    = 2000
	MaxReviewResponseLength   = 1000
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы броней, занимающих время
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// RevenueStatuses статусы, учитываемые в выручке
var RevenueStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
