package export_business_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/bookings"
	"github.com/rings-s/booking/internal/service/bookings/models"
)

const (
	msgInvalidBusinessID = "некорректный ID компании"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidPeriod     = "from и to обязательны в формате YYYY-MM-DD, from не позже to"
	msgBusinessNotFound  = "компания не найдена"
	msgForbidden         = "доступ запрещен"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/bookings/export?from=2025-10-01&to=2025-10-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings/export - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/bookings/export - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	from, errFrom := handlers.QueryDate(r, "from")
	to, errTo := handlers.QueryDate(r, "to")
	if errFrom != nil || errTo != nil || from == nil || to == nil {
		h.logger.Warn("GET /businesses/{id}/bookings/export - Invalid period: business_id=%d", businessID)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	// Файл собирается целиком до отправки заголовков
	var buf bytes.Buffer
	err = h.service.ExportBusinessBookings(r.Context(), &models.ExportRequest{
		UserID:     userID,
		BusinessID: businessID,
		From:       *from,
		To:         *to,
	}, &buf)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/bookings/export - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, bookings.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/bookings/export - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/bookings/export - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /businesses/{id}/bookings/export - Failed to export: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("bookings_%d_%s_%s.xlsx", businessID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	size := buf.Len()
	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /businesses/{id}/bookings/export - Export sent: business_id=%d, bytes=%d", businessID, size)
}
