package models

import (
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	UserID     int64  `json:"-"`
	BusinessID int64  `json:"business_id"`
	BookingID  *int64 `json:"booking_id,omitempty"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// RespondRequest ответ владельца на отзыв
type RespondRequest struct {
	Response string `json:"response"`
}

// FeatureRequest закрепление отзыва
type FeatureRequest struct {
	Featured bool `json:"featured"`
}

// ReviewResponse отзыв в ответе API
type ReviewResponse struct {
	ID               int64      `json:"id"`
	BusinessID       int64      `json:"business_id"`
	CustomerID       int64      `json:"customer_id"`
	BookingID        *int64     `json:"booking_id,omitempty"`
	Rating           int        `json:"rating"`
	Comment          string     `json:"comment"`
	IsVerified       bool       `json:"is_verified"`
	IsFeatured       bool       `json:"is_featured"`
	BusinessResponse *string    `json:"business_response,omitempty"`
	ResponseDate     *time.Time `json:"response_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ReviewListResponse отзывы компании
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Count         int              `json:"count"`
	AverageRating float64          `json:"average_rating"`
}

// FromDomainReview конвертирует доменную модель в ответ
func FromDomainReview(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:               r.ID,
		BusinessID:       r.BusinessID,
		CustomerID:       r.CustomerID,
		BookingID:        r.BookingID,
		Rating:           r.Rating,
		Comment:          r.Comment,
		IsVerified:       r.IsVerified,
		IsFeatured:       r.IsFeatured,
		BusinessResponse: r.BusinessResponse,
		ResponseDate:     r.ResponseDate,
		CreatedAt:        r.CreatedAt,
	}
}
