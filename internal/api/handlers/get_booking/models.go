package get_booking

import (
	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/bookings/models"
)

const (
	viewerCustomer = "customer"
	viewerOwner    = "owner"
)

// BookingDetailsResponse бронь с ролью смотрящего и доступными ему действиями
type BookingDetailsResponse struct {
	*models.BookingResponse
	ViewerRole string   `json:"viewer_role"`
	Actions    []string `json:"actions"`
}

// NewBookingDetailsResponse доступ уже проверен сервисом: не клиент значит владелец
func NewBookingDetailsResponse(b *models.BookingResponse, userID int64) *BookingDetailsResponse {
	role := viewerOwner
	if b.CustomerID == userID {
		role = viewerCustomer
	}
	return &BookingDetailsResponse{
		BookingResponse: b,
		ViewerRole:      role,
		Actions:         actionsFor(domain.BookingStatus(b.Status), role),
	}
}

func actionsFor(status domain.BookingStatus, role string) []string {
	b := &domain.Booking{Status: status}
	actions := make([]string, 0, 4)

	if role == viewerOwner {
		if b.CanBeConfirmed() {
			actions = append(actions, string(domain.StatusConfirmed))
		}
		if b.CanBeCompleted() {
			actions = append(actions, string(domain.StatusCompleted))
		}
		if b.OccupiesTime() {
			actions = append(actions, string(domain.StatusNoShow))
		}
	}
	if b.CanBeRescheduled() {
		actions = append(actions, "reschedule")
	}
	if b.CanBeCancelled() {
		actions = append(actions, string(domain.StatusCancelled))
	}
	return actions
}
