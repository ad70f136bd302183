package domain

import "time"

// StatsPeriod период дашборда
type StatsPeriod string

const (
	PeriodWeek    StatsPeriod = "week"
	PeriodMonth   StatsPeriod = "month"
	PeriodQuarter StatsPeriod = "quarter"
	PeriodYear    StatsPeriod = "year"
)

// IsValid проверяет, является ли период допустимым
func (p StatsPeriod) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// Days длина периода в днях
func (p StatsPeriod) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// BookingSummary агрегаты по броням компании за период
type BookingSummary struct {
	Bookings  int
	Confirmed int
	Revenue   float64 // оплаченные confirmed/completed
	Customers int     // уникальные клиенты
}

// DailyCount количество броней по статусам за день
type DailyCount struct {
	Date      time.Time
	Confirmed int
	Pending   int
	Cancelled int
	Total     int
}
