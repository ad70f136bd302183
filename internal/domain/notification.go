package domain

import "time"

// NotificationType тип уведомления
type NotificationType string

const (
	NotificationBookingConfirmed     NotificationType = "booking_confirmed"
	NotificationBookingCancelled     NotificationType = "booking_cancelled"
	NotificationBookingReminder      NotificationType = "booking_reminder"
	NotificationReviewRequest        NotificationType = "review_request"
	NotificationPaymentReceived      NotificationType = "payment_received"
	NotificationSubscriptionExpiring NotificationType = "subscription_expiring"
	NotificationNewCustomer          NotificationType = "new_customer"
	NotificationGeneral              NotificationType = "general"
)

// Notification уведомление пользователя
type Notification struct {
	ID         int64
	UserID     int64
	BusinessID *int64
	BookingID  *int64
	Type       NotificationType
	Title      string
	Message    string
	IsRead     bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}
