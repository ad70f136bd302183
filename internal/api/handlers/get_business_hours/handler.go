package get_business_hours

import (
	"errors"
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/service/businesshours"
)

const (
	msgInvalidBusinessID = "некорректный ID компании"
	msgBusinessNotFound  = "компания не найдена"
)

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/hours - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	hours, err := h.service.GetHours(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/hours - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/hours - Failed to get hours: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/hours - Hours retrieved successfully: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, hours)
}
