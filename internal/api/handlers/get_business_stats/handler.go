package get_business_stats

import (
	"errors"
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
	"github.com/rings-s/booking/internal/service/dashboard"
)

const (
	msgInvalidBusinessID = "некорректный ID компании"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidPeriod     = "period должен быть week, month, quarter или year"
	msgBusinessNotFound  = "компания не найдена"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/stats?period=week|month|quarter|year
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/stats - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/stats - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	period := r.URL.Query().Get("period")

	result, err := h.service.Stats(r.Context(), businessID, userID, period)
	if err != nil {
		switch {
		case errors.Is(err, dashboard.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/stats - Invalid period: %s", period)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, dashboard.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/stats - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, dashboard.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/stats - Access denied: business_id=%d, user_id=%d", businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /businesses/{id}/stats - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/stats - Retrieved successfully: business_id=%d, period=%s",
		businessID, result.Period)
	handlers.RespondJSON(w, http.StatusOK, result)
}
