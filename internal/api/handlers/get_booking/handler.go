package get_booking

import (
	"errors"
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
	"github.com/rings-s/booking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "бронирование доступно только клиенту и владельцу компании"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Bad booking ID: user_id=%d, %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, err, bookingID, userID)
		return
	}

	details := NewBookingDetailsResponse(booking, userID)
	h.logger.Info("GET /bookings/{id} - booking_id=%d, status=%s, viewer=%s",
		bookingID, booking.Status, details.ViewerRole)
	handlers.RespondJSON(w, http.StatusOK, details)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, bookingID, userID int64) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - user_id=%d is neither customer nor owner of booking_id=%d", userID, bookingID)
		handlers.RespondForbidden(w, msgForbidden)
	default:
		h.logger.Error("GET /bookings/{id} - booking_id=%d: %v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
