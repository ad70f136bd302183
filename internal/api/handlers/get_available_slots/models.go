package get_available_slots

import (
	"github.com/rings-s/booking/internal/domain"
	getAvailableSlots "github.com/rings-s/booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string         `json:"date"`
	BusinessID int64          `json:"business_id"`
	ServiceID  int64          `json:"service_id"`
	Slots      []SlotResponse `json:"slots"`
}

// SlotResponse слот в ответе
type SlotResponse struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	AvailableSpots int    `json:"available_spots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			AvailableSpots: s.AvailableSpots,
		})
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}
