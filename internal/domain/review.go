package domain

import "time"

// Review отзыв клиента о компании
type Review struct {
	ID               int64
	BusinessID       int64
	CustomerID       int64
	BookingID        *int64
	Rating           int
	Comment          string
	IsVerified       bool // отзыв по завершённой брони этого клиента
	IsFeatured       bool
	BusinessResponse *string
	ResponseDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
