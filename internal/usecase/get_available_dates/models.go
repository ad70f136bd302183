package get_available_dates

import "time"

// Request модель запроса доступных дат
type Request struct {
	BusinessID int64
	ServiceID  int64
	StartDate  time.Time // нулевая дата - сегодня
	DaysAhead  int       // 0 - горизонт по умолчанию
}

// Response модель ответа
type Response struct {
	BusinessID int64
	ServiceID  int64
	StartDate  time.Time
	DaysAhead  int
	Dates      []Date
}

// Date дата со свободными слотами
type Date struct {
	Date       time.Time
	Weekday    string // "Monday".."Sunday"
	SlotsCount int
}
