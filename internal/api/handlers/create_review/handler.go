package create_review

import (
	"errors"
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
	"github.com/rings-s/booking/internal/service/reviews"
	"github.com/rings-s/booking/internal/service/reviews/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "компания не найдена"
	msgAlreadyReviewed    = "отзыв на это бронирование уже оставлен"
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

// Handle POST /api/v1/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	review, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /reviews - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reviews.ErrBusinessNotFound):
			h.logger.Warn("POST /reviews - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, reviews.ErrAlreadyReviewed):
			h.logger.Warn("POST /reviews - Already reviewed: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyReviewed, "already_reviewed")

		default:
			h.logger.Error("POST /reviews - Failed to create review: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Review created successfully: review_id=%d, business_id=%d, verified=%t",
		review.ID, review.BusinessID, review.IsVerified)
	handlers.RespondJSON(w, http.StatusCreated, review)
}
