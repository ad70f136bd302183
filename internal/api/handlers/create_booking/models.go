package create_booking

import (
	"fmt"
	"time"

	"github.com/rings-s/booking/internal/domain"
	createBooking "github.com/rings-s/booking/internal/usecase/create_booking"
	"github.com/rings-s/booking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID    int64   `json:"business_id"`
	ServiceID     int64   `json:"service_id"`
	BookingDate   string  `json:"booking_date"` // "2025-10-15"
	StartTime     string  `json:"start_time"`   // "10:00"
	EndTime       string  `json:"end_time"`     // "11:00"
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customer_id"`
	BusinessID    int64   `json:"business_id"`
	BusinessName  string  `json:"business_name"`
	ServiceID     int64   `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	BookingDate   string  `json:"booking_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Status        string  `json:"status"`
	TotalPrice    float64 `json:"total_price"`
	IsPaid        bool    `json:"is_paid"`
	Notes         *string `json:"notes,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
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

	return &createBooking.Request{
		CustomerID:    customerID,
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		Date:          bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		CustomerID:    resp.CustomerID,
		BusinessID:    resp.BusinessID,
		BusinessName:  resp.BusinessName,
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		TotalPrice:    resp.TotalPrice,
		IsPaid:        resp.IsPaid,
		Notes:         resp.Notes,
		PaymentMethod: resp.PaymentMethod,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
