package get_business_bookings

import (
	"net/http"

	"github.com/rings-s/booking/internal/api/handlers"
	"github.com/rings-s/booking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день, from/to - период.
func ToServiceRequest(r *http.Request, businessID, userID int64) (*models.GetBusinessBookingsRequest, error) {
	req := &models.GetBusinessBookingsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	serviceID, err := handlers.QueryID(r, "serviceId")
	if err != nil {
		return nil, err
	}
	req.ServiceID = serviceID

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.StartDate = date
		req.EndDate = date
		return req, nil
	}

	if req.StartDate, err = handlers.QueryDate(r, "from"); err != nil {
		return nil, err
	}
	if req.EndDate, err = handlers.QueryDate(r, "to"); err != nil {
		return nil, err
	}
	return req, nil
}
