package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rings-s/booking/internal/api/handlers"
	getAvailableDates "github.com/rings-s/booking/internal/usecase/get_available_dates"
)

const (
	msgInvalidBusinessID = "некорректный ID компании"
	msgInvalidServiceID  = "некорректный или отсутствующий serviceId"
	msgInvalidDaysAhead  = "daysAhead должен быть целым числом"
	msgInvalidStartDate  = "некорректный формат startDate, ожидается YYYY-MM-DD"
	msgBusinessNotFound  = "компания не найдена"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-dates?serviceId=1&daysAhead=30&startDate=2025-10-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-dates - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceID, err := handlers.QueryID(r, "serviceId")
	if err != nil || serviceID == nil {
		h.logger.Warn("GET /businesses/{id}/available-dates - Invalid service ID: business_id=%d", businessID)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req := &getAvailableDates.Request{
		BusinessID: businessID,
		ServiceID:  *serviceID,
	}

	if raw := r.URL.Query().Get("daysAhead"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-dates - Invalid daysAhead: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDaysAhead)
			return
		}
		req.DaysAhead = days
	}

	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-dates - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}
	if startDate != nil {
		req.StartDate = *startDate
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/available-dates - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/available-dates - Service not found: service_id=%d", *serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /businesses/{id}/available-dates - Failed to get dates: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-dates - Dates retrieved: business_id=%d, count=%d",
		businessID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
