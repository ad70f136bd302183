package feature_review

import (
	"context"

	"github.com/rings-s/booking/internal/service/reviews/models"
)

type ReviewService interface {
	MarkFeatured(ctx context.Context, reviewID, userID int64, featured bool) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
