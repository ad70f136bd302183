package review

import (
	"errors"
	"fmt"

	"github.com/rings-s/booking/internal/domain"
)

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = fmt.Errorf("review.repository: review %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("review.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("review.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("review.repository: failed to scan row")
)
