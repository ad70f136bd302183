package domain

import "time"

// Service услуга компании
type Service struct {
	ID                 int64
	BusinessID         int64
	Name               string
	Description        string
	Price              float64
	DurationMinutes    int
	BufferTimeMinutes  int
	MaxBookingsPerSlot int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Stride шаг между началами соседних слотов: длительность + буфер
func (s *Service) Stride() time.Duration {
	return time.Duration(s.DurationMinutes+s.BufferTimeMinutes) * time.Minute
}

// BelongsTo returns true if the service is offered by the business
func (s *Service) BelongsTo(businessID int64) bool {
	return s.BusinessID == businessID
}
