package domain

import (
	"time"

	"github.com/rings-s/booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// Booking бронь клиента на услугу компании
type Booking struct {
	ID            int64
	BusinessID    int64
	ServiceID     int64
	CustomerID    int64 // ID пользователя-клиента
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        BookingStatus
	TotalPrice    float64
	Notes         *string
	IsPaid        bool
	PaymentMethod *string

	// Denormalized data for history
	ServiceName  string
	BusinessName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesTime returns true if the booking blocks its interval (pending or confirmed)
func (b *Booking) OccupiesTime() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed only pending bookings can be confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns false for already cancelled or completed bookings
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// CanBeCompleted only confirmed bookings can be completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeRescheduled returns true while the booking still occupies time
func (b *Booking) CanBeRescheduled() bool {
	return b.OccupiesTime()
}

// Overlaps половинчато-открытое пересечение [StartTime, EndTime) с [start, end)
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}

// BookingListFilter выборка броней компании на одну дату
type BookingListFilter struct {
	BusinessID  int64
	Date        time.Time
	Statuses    []BookingStatus
	ServiceID   *int64 // nil - все услуги
	ExcludingID *int64 // исключить бронь (при переносе)
}

// BusinessBookingsFilter фильтр для списка броней компании
type BusinessBookingsFilter struct {
	BusinessID int64
	ServiceID  *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *BookingStatus
}

// BookingScope выборка броней клиента
type BookingScope string

const (
	ScopeAll      BookingScope = "all"
	ScopeUpcoming BookingScope = "upcoming"
	ScopeHistory  BookingScope = "history"
)
