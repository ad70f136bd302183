package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rings-s/booking/internal/domain"
)

func TestWriteBookings(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		{ID: 1, BookingDate: date, StartTime: "10:00", EndTime: "11:00", ServiceName: "Massage", CustomerID: 7, Status: domain.StatusCompleted, TotalPrice: 50, IsPaid: true},
		{ID: 2, BookingDate: date, StartTime: "12:00", EndTime: "13:00", ServiceName: "Massage", CustomerID: 8, Status: domain.StatusPending, TotalPrice: 50},
	}

	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().WriteBookings(&buf, "Studio", bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Studio"}, f.GetSheetList())

	header, err := f.GetCellValue("Studio", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	status, err := f.GetCellValue("Studio", "G3")
	require.NoError(t, err)
	assert.Equal(t, "pending", status)

	revenue, err := f.GetCellValue("Studio", "H5")
	require.NoError(t, err)
	assert.Equal(t, "50", revenue)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Bookings", sheetName(""))
	assert.Len(t, []rune(sheetName("A very long business name that exceeds the limit")), maxSheetName)
}
