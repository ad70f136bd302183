package domain

import (
	"time"

	"github.com/rings-s/booking/pkg/types"
)

// Slot свободный интервал для бронирования. Вычисляется на каждый запрос и не хранится.
type Slot struct {
	StartTime      types.TimeString
	EndTime        types.TimeString
	AvailableSpots int
}

// IsFull returns true if the slot has no available spots
func (s *Slot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// AvailableDate дата, на которую есть хотя бы один слот
type AvailableDate struct {
	Date       time.Time
	Weekday    Weekday
	SlotsCount int
}
