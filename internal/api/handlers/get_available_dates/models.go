package get_available_dates

import (
	"github.com/rings-s/booking/internal/domain"
	getAvailableDates "github.com/rings-s/booking/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	BusinessID int64          `json:"business_id"`
	ServiceID  int64          `json:"service_id"`
	StartDate  string         `json:"start_date"`
	DaysAhead  int            `json:"days_ahead"`
	Dates      []DateResponse `json:"available_dates"`
}

// DateResponse дата со свободными слотами
type DateResponse struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	SlotsCount int    `json:"slots_count"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]DateResponse, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, DateResponse{
			Date:       d.Date.Format(domain.DateFormat),
			Weekday:    d.Weekday,
			SlotsCount: d.SlotsCount,
		})
	}

	return &AvailableDatesResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		StartDate:  resp.StartDate.Format(domain.DateFormat),
		DaysAhead:  resp.DaysAhead,
		Dates:      dates,
	}
}
