package get_available_dates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableDates "github.com/rings-s/booking/internal/usecase/get_available_dates"
	"github.com/rings-s/booking/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/available-dates", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailableDates.Response{
		BusinessID: 3,
		ServiceID:  7,
		StartDate:  start,
		DaysAhead:  14,
		Dates: []getAvailableDates.Date{
			{Date: start, Weekday: "Monday", SlotsCount: 8},
			{Date: start.AddDate(0, 0, 2), Weekday: "Wednesday", SlotsCount: 3},
		},
	}}

	rec := serve(uc, "/businesses/3/available-dates?serviceId=7&daysAhead=14&startDate=2025-03-10")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.BusinessID)
	assert.Equal(t, int64(7), uc.got.ServiceID)
	assert.Equal(t, 14, uc.got.DaysAhead)
	assert.True(t, uc.got.StartDate.Equal(start))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(3), body["business_id"])
	assert.Equal(t, float64(7), body["service_id"])
	assert.Equal(t, "2025-03-10", body["start_date"])
	assert.Equal(t, float64(14), body["days_ahead"])

	dates, ok := body["available_dates"].([]any)
	require.True(t, ok)
	require.Len(t, dates, 2)
	assert.Equal(t, map[string]any{"date": "2025-03-10", "weekday": "Monday", "slots_count": float64(8)}, dates[0])
	assert.Equal(t, map[string]any{"date": "2025-03-12", "weekday": "Wednesday", "slots_count": float64(3)}, dates[1])
}

func TestHandle_Defaults(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableDates.Response{}}

	rec := serve(uc, "/businesses/3/available-dates?serviceId=7")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Zero(t, uc.got.DaysAhead)
	assert.True(t, uc.got.StartDate.IsZero())

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []any{}, body["available_dates"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad business id", "/businesses/x/available-dates?serviceId=1", nil, http.StatusBadRequest},
		{"missing service id", "/businesses/1/available-dates", nil, http.StatusBadRequest},
		{"bad days ahead", "/businesses/1/available-dates?serviceId=1&daysAhead=week", nil, http.StatusBadRequest},
		{"bad start date", "/businesses/1/available-dates?serviceId=1&startDate=10.03.2025", nil, http.StatusBadRequest},
		{"horizon out of range", "/businesses/1/available-dates?serviceId=1&daysAhead=400",
			fmt.Errorf("%w: days ahead must be between 1 and 365", getAvailableDates.ErrInvalidInput), http.StatusBadRequest},
		{"business not found", "/businesses/1/available-dates?serviceId=1",
			getAvailableDates.ErrBusinessNotFound, http.StatusNotFound},
		{"service not found", "/businesses/1/available-dates?serviceId=1",
			fmt.Errorf("%w: inactive", getAvailableDates.ErrServiceNotFound), http.StatusNotFound},
		{"internal", "/businesses/1/available-dates?serviceId=1",
			getAvailableDates.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			rec := serve(uc, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				assert.Nil(t, uc.got)
			}

			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
