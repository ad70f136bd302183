package models

import (
	"errors"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidScope возвращается при некорректной выборке броней клиента
	ErrInvalidScope = errors.New("invalid booking scope")
)

// Request модели

// GetBusinessBookingsRequest запрос на получение бронирований компании
type GetBusinessBookingsRequest struct {
	UserID     int64
	BusinessID int64
	ServiceID  *int64     // Фильтр по услуге (опционально)
	StartDate  *time.Time // Начало периода (опционально)
	EndDate    *time.Time // Конец периода (опционально)
	Status     *string    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{
		BusinessID: r.BusinessID,
		ServiceID:  r.ServiceID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ExportRequest выгрузка броней компании за период
type ExportRequest struct {
	UserID     int64
	BusinessID int64
	From       time.Time
	To         time.Time
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	BusinessID    int64   `json:"business_id"`
	ServiceID     int64   `json:"service_id"`
	CustomerID    int64   `json:"customer_id"`
	BookingDate   string  `json:"booking_date"` // "2025-10-15"
	StartTime     string  `json:"start_time"`   // "10:00"
	EndTime       string  `json:"end_time"`     // "11:00"
	Status        string  `json:"status"`
	TotalPrice    float64 `json:"total_price"`
	IsPaid        bool    `json:"is_paid"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	// Денормализованные данные
	ServiceName  string `json:"service_name"`
	BusinessName string `json:"business_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		BusinessID:    b.BusinessID,
		ServiceID:     b.ServiceID,
		CustomerID:    b.CustomerID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		Status:        string(b.Status),
		TotalPrice:    b.TotalPrice,
		IsPaid:        b.IsPaid,
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
		ServiceName:   b.ServiceName,
		BusinessName:  b.BusinessName,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Count = len(resp.Bookings)

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainScope пустая строка - все брони
func ToDomainScope(scope string) (domain.BookingScope, error) {
	switch domain.BookingScope(scope) {
	case "", domain.ScopeAll:
		return domain.ScopeAll, nil
	case domain.ScopeUpcoming:
		return domain.ScopeUpcoming, nil
	case domain.ScopeHistory:
		return domain.ScopeHistory, nil
	default:
		return "", ErrInvalidScope
	}
}
