package respond_review

import (
	"context"

	"github.com/rings-s/booking/internal/service/reviews/models"
)

type ReviewService interface {
	Respond(ctx context.Context, reviewID, userID int64, response string) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
