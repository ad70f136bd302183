package domain

import "time"

// Business компания, публикующая услуги
type Business struct {
	ID                    int64
	OwnerID               int64
	Name                  string
	Slug                  string
	Category              string
	City                  string
	IsActive              bool
	AcceptsOnlineBookings bool
	AutoConfirmBookings   bool
	SubscriptionTier      SubscriptionTier
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsOwnedBy returns true if userID owns the business
func (b *Business) IsOwnedBy(userID int64) bool {
	return b.OwnerID == userID
}

// InitialBookingStatus статус новой брони с учётом автоподтверждения
func (b *Business) InitialBookingStatus() BookingStatus {
	if b.AutoConfirmBookings {
		return StatusConfirmed
	}
	return StatusPending
}
