package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/rings-s/booking/internal/domain"
	rescheduleBooking "github.com/rings-s/booking/internal/usecase/reschedule_booking"
	"github.com/rings-s/booking/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// RescheduledBookingResponse HTTP response model
type RescheduledBookingResponse struct {
	ID                int64  `json:"id"`
	BusinessID        int64  `json:"business_id"`
	ServiceID         int64  `json:"service_id"`
	CustomerID        int64  `json:"customer_id"`
	BookingDate       string `json:"booking_date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Status            string `json:"status"`
	PreviousDate      string `json:"previous_date"`
	PreviousStartTime string `json:"previous_start_time"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("booking_date: %w", err)
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduledBookingResponse {
	return &RescheduledBookingResponse{
		ID:                resp.ID,
		BusinessID:        resp.BusinessID,
		ServiceID:         resp.ServiceID,
		CustomerID:        resp.CustomerID,
		BookingDate:       resp.BookingDate.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		Status:            resp.Status,
		PreviousDate:      resp.PreviousDate.Format(domain.DateFormat),
		PreviousStartTime: resp.PreviousStartTime.String(),
	}
}
