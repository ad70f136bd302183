package notification

import (
	"errors"
	"fmt"

	"github.com/rings-s/booking/internal/domain"
)

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено у пользователя
	ErrNotificationNotFound = fmt.Errorf("notification.repository: notification %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("notification.repository: failed to scan row")
)
