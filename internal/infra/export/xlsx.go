package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rings-s/booking/internal/domain"
)

// maxSheetName ограничение Excel на длину имени листа
const maxSheetName = 31

var bookingColumns = []string{
	"ID", "Date", "Start", "End", "Service", "Customer ID", "Status", "Price", "Paid", "Payment method", "Notes",
}

// XLSXExporter выгрузка броней в .xlsx
type XLSXExporter struct{}

// NewXLSXExporter создает экспортер
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// WriteBookings пишет в w книгу с одним листом sheet
func (e *XLSXExporter) WriteBookings(w io.Writer, sheet string, bookings []*domain.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet = sheetName(sheet)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, toCells(bookingColumns)); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(bookingColumns), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	var revenue float64
	for i, b := range bookings {
		row := []interface{}{
			b.ID,
			b.BookingDate.Format(domain.DateFormat),
			b.StartTime.String(),
			b.EndTime.String(),
			b.ServiceName,
			b.CustomerID,
			string(b.Status),
			b.TotalPrice,
			b.IsPaid,
			deref(b.PaymentMethod),
			deref(b.Notes),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
		if b.IsPaid {
			revenue += b.TotalPrice
		}
	}

	totalRow := len(bookings) + 3
	if err := writeRow(f, sheet, totalRow, []interface{}{"Total", len(bookings), "", "", "", "", "Paid revenue", revenue}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, val := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("export: set cell %s: %w", cell, err)
		}
	}
	return nil
}

func sheetName(name string) string {
	if name == "" {
		return "Bookings"
	}
	runes := []rune(strings.NewReplacer(":", "_", "/", "_", "\\", "_", "?", "_", "*", "_", "[", "(", "]", ")").Replace(name))
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return string(runes)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
