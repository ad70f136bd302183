package hours

import (
	"errors"
	"fmt"

	"github.com/rings-s/booking/internal/domain"
)

var (
	// ErrHoursNotFound возвращается, когда для дня недели нет записи
	ErrHoursNotFound = fmt.Errorf("hours.repository: business hours %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("hours.repository: failed to scan row")
)
