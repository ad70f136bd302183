package models

// Request модели

// DayHoursRequest часы работы на один день недели
type DayHoursRequest struct {
	Weekday     int    `json:"weekday"` // 0 = понедельник ... 6 = воскресенье
	OpeningTime string `json:"opening_time,omitempty"`
	ClosingTime string `json:"closing_time,omitempty"`
	IsClosed    bool   `json:"is_closed"`
}

// UpdateHoursRequest запрос на обновление часов работы.
// Переданные дни заменяются, остальные не меняются.
type UpdateHoursRequest struct {
	UserID     int64             `json:"-"`
	BusinessID int64             `json:"-"`
	Hours      []DayHoursRequest `json:"hours"`
}

// Response модели

// DayHoursResponse часы работы на день
type DayHoursResponse struct {
	Weekday     int    `json:"weekday"`
	DayName     string `json:"day_name"`
	OpeningTime string `json:"opening_time,omitempty"`
	ClosingTime string `json:"closing_time,omitempty"`
	IsClosed    bool   `json:"is_closed"`
}

// HoursResponse часы работы на все 7 дней
type HoursResponse struct {
	BusinessID int64              `json:"business_id"`
	Hours      []DayHoursResponse `json:"hours"`
}
