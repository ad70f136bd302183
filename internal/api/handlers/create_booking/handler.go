package create_booking

import (
	"errors"
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/api/middleware"
	createBooking "github.com/rings-s/booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgSlotTaken             = "выбранный слот только что заняли"
	msgMonthlyLimitReached   = "исчерпан месячный лимит бронирований компании"
	msgOnlineBookingDisabled = "компания не принимает онлайн-бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_input")
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondRejection(w, err) {
			h.logger.Warn("POST /bookings - Booking rejected: user_id=%d, business_id=%d, reason=%v",
				userID, req.BusinessID, err)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, business_id=%d", userID, req.BusinessID)
			handlers.RespondConflict(w, msgSlotTaken, "slot_taken")

		case errors.Is(err, createBooking.ErrMonthlyLimitReached):
			h.logger.Warn("POST /bookings - Monthly limit reached: business_id=%d", req.BusinessID)
			handlers.RespondErrorWithCode(w, http.StatusForbidden, msgMonthlyLimitReached, "monthly_limit_reached")

		case errors.Is(err, createBooking.ErrOnlineBookingDisabled):
			h.logger.Warn("POST /bookings - Online booking disabled: business_id=%d", req.BusinessID)
			handlers.RespondErrorWithCode(w, http.StatusBadRequest, msgOnlineBookingDisabled, "online_booking_disabled")

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_input")

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, business_id=%d, error=%v",
				userID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, business_id=%d, status=%s",
		result.ID, userID, req.BusinessID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
