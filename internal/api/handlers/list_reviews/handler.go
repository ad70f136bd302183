package list_reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/service/reviews"
)

const (
	msgInvalidBusinessID = "некорректный ID компании"
	msgInvalidMinRating  = "minRating должен быть числом от 0 до 5"
	msgBusinessNotFound  = "компания не найдена"
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

// Handle GET /api/v1/businesses/{businessId}/reviews?minRating=4
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/reviews - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	minRating := 0
	if raw := r.URL.Query().Get("minRating"); raw != "" {
		if minRating, err = strconv.Atoi(raw); err != nil {
			h.logger.Warn("GET /businesses/{id}/reviews - Invalid minRating: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMinRating)
			return
		}
	}

	result, err := h.service.ListByBusiness(r.Context(), businessID, minRating)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/reviews - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMinRating)

		case errors.Is(err, reviews.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/reviews - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/reviews - Failed to list reviews: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/reviews - Reviews retrieved successfully: business_id=%d, count=%d",
		businessID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
