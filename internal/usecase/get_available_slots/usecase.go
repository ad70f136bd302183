package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/rings-s/booking/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	generator    SlotGenerator
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	generator SlotGenerator,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		generator:    generator,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем компанию
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("GetAvailableSlots: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive || !service.BelongsTo(business.ID) {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not offered by business id=%d", req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 4. Генерируем слоты
	generated, err := uc.generator.GenerateSlots(ctx, business, service, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %w", ErrInternal, err)
	}

	uc.metrics.IncAvailabilityQuery("slots")

	slots := make([]Slot, 0, len(generated))
	for _, s := range generated {
		slots = append(slots, Slot{
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			AvailableSpots: s.AvailableSpots,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%d, service=%d, date=%s",
		len(slots), req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}
