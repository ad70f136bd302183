package domain

import "time"

// Типы событий, публикуемых через outbox
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingRescheduled   = "booking.rescheduled"
	EventNotificationCreated  = "notification.created"
	EventReviewCreated        = "review.created"
)

// OutboxEvent событие, записанное в одной транзакции с изменением данных
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   string
	AggregateID string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// BookingEvent полезная нагрузка событий booking.*
type BookingEvent struct {
	BookingID      int64  `json:"booking_id"`
	BusinessID     int64  `json:"business_id"`
	ServiceID      int64  `json:"service_id"`
	CustomerID     int64  `json:"customer_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
}

// NewBookingEvent собирает событие по брони
func NewBookingEvent(b *Booking) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		BusinessID: b.BusinessID,
		ServiceID:  b.ServiceID,
		CustomerID: b.CustomerID,
		Date:       b.BookingDate.Format(DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
	}
}

// NotificationEvent полезная нагрузка notification.created
type NotificationEvent struct {
	NotificationID int64  `json:"notification_id"`
	UserID         int64  `json:"user_id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
}
