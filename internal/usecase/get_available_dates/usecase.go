package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/rings-s/booking/internal/domain"
)

// UseCase use case для поиска дат, на которые есть свободные слоты
type UseCase struct {
	businessRepo   BusinessRepository
	serviceRepo    ServiceRepository
	scanner        DateScanner
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
	defaultHorizon int
	maxHorizon     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	scanner DateScanner,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
	defaultHorizon int,
	maxHorizon int,
) *UseCase {
	if maxHorizon <= 0 || maxHorizon > domain.MaxHorizonDays {
		maxHorizon = domain.MaxHorizonDays
	}
	if defaultHorizon <= 0 || defaultHorizon > maxHorizon {
		defaultHorizon = domain.DefaultHorizonDays
	}
	return &UseCase{
		businessRepo:   businessRepo,
		serviceRepo:    serviceRepo,
		scanner:        scanner,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
		defaultHorizon: defaultHorizon,
		maxHorizon:     maxHorizon,
	}
}

// Execute выполняет use case поиска доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: business=%d, service=%d, days_ahead=%d",
		req.BusinessID, req.ServiceID, req.DaysAhead)

	// 1. Валидация входных данных
	if req.BusinessID <= 0 || req.ServiceID <= 0 {
		uc.logger.Warn("GetAvailableDates: validation failed: non-positive ids")
		return nil, fmt.Errorf("%w: businessID and serviceID must be positive", ErrInvalidInput)
	}

	daysAhead := req.DaysAhead
	if daysAhead == 0 {
		daysAhead = uc.defaultHorizon
	}
	if daysAhead < 1 || daysAhead > uc.maxHorizon {
		uc.logger.Warn("GetAvailableDates: days_ahead=%d out of range", req.DaysAhead)
		return nil, fmt.Errorf("%w: daysAhead must be between 1 and %d", ErrInvalidInput, uc.maxHorizon)
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = uc.timeProvider.Now()
	}

	// 2. Получаем компанию и услугу
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableDates: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}
	if !business.IsActive {
		return nil, ErrBusinessNotFound
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive || !service.BelongsTo(business.ID) {
		return nil, ErrServiceNotFound
	}

	// 3. Сканируем горизонт
	found, err := uc.scanner.AvailableDates(ctx, business, service, startDate, daysAhead)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to scan dates: %v", err)
		return nil, fmt.Errorf("%w: failed to scan dates: %w", ErrInternal, err)
	}

	uc.metrics.IncAvailabilityQuery("dates")

	dates := make([]Date, 0, len(found))
	for _, d := range found {
		dates = append(dates, Date{
			Date:       d.Date,
			Weekday:    d.Weekday.String(),
			SlotsCount: d.SlotsCount,
		})
	}

	uc.logger.Info("GetAvailableDates: found %d dates for business=%d, service=%d",
		len(dates), req.BusinessID, req.ServiceID)

	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		StartDate:  startDate,
		DaysAhead:  daysAhead,
		Dates:      dates,
	}, nil
}
