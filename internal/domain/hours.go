package domain

import (
	"time"

	"github.com/rings-s/booking/pkg/types"
)

// Weekday день недели, 0 = понедельник ... 6 = воскресенье
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayOf переводит time.Weekday (0 = воскресенье) в Weekday (0 = понедельник)
func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

// IsValid returns true for 0..6
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// String английское название дня
func (w Weekday) String() string {
	if !w.IsValid() {
		return "Unknown"
	}
	return weekdayNames[w]
}

// BusinessHours часы работы компании в конкретный день недели
type BusinessHours struct {
	ID          int64
	BusinessID  int64
	Weekday     Weekday
	OpeningTime types.TimeString
	ClosingTime types.TimeString
	IsClosed    bool
}
