package models

import (
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// NotificationResponse уведомление в ответе API
type NotificationResponse struct {
	ID         int64      `json:"id"`
	BusinessID *int64     `json:"business_id,omitempty"`
	BookingID  *int64     `json:"booking_id,omitempty"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NotificationListResponse список уведомлений со счётчиком непрочитанных
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// AffectedResponse количество затронутых уведомлений
type AffectedResponse struct {
	Affected int64 `json:"affected"`
}

// FromDomainNotification конвертирует доменную модель в ответ
func FromDomainNotification(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		BusinessID: n.BusinessID,
		BookingID:  n.BookingID,
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}
