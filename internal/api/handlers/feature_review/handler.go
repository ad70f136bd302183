package feature_review

import (
	"errors"
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
	"github.com/rings-s/booking/internal/service/reviews"
	"github.com/rings-s/booking/internal/service/reviews/models"
)

const (
	msgInvalidReviewID    = "некорректный ID отзыва"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "отзыв не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reviews/{reviewId}/feature
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.PathID(r, "reviewId")
	if err != nil {
		h.logger.Warn("POST /reviews/{id}/feature - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reviews/{id}/feature - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.FeatureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reviews/{id}/feature - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	review, err := h.service.MarkFeatured(r.Context(), reviewID, userID, req.Featured)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /reviews/{id}/feature - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("POST /reviews/{id}/feature - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /reviews/{id}/feature - Access denied: review_id=%d, user_id=%d", reviewID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /reviews/{id}/feature - Failed: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews/{id}/feature - Review updated successfully: review_id=%d", reviewID)
	handlers.RespondJSON(w, http.StatusOK, review)
}
