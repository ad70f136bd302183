package businesshours

import (
	"context"
	"errors"
	"fmt"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/businesshours/models"
	"github.com/rings-s/booking/pkg/types"
)

// Service сервис часов работы компании
type Service struct {
	hoursRepo    HoursRepository
	week         WeekResolver
	businessRepo BusinessRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	hoursRepo HoursRepository,
	week WeekResolver,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		hoursRepo:    hoursRepo,
		week:         week,
		businessRepo: businessRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetHours возвращает часы работы на все дни недели
func (s *Service) GetHours(ctx context.Context, businessID int64) (*models.HoursResponse, error) {
	s.logger.Info("GetHours: fetching hours for business=%d", businessID)

	if _, err := s.getBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	week, err := s.week.Week(ctx, businessID)
	if err != nil {
		s.logger.Error("GetHours: failed to resolve hours for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetHours - %w", ErrInternal, err)
	}

	resp := &models.HoursResponse{
		BusinessID: businessID,
		Hours:      make([]models.DayHoursResponse, 0, len(week)),
	}
	for i, interval := range week {
		day := models.DayHoursResponse{
			Weekday:  i,
			DayName:  domain.Weekday(i).String(),
			IsClosed: interval.Closed,
		}
		if !interval.Closed {
			day.OpeningTime = interval.Open.String()
			day.ClosingTime = interval.Close.String()
		}
		resp.Hours = append(resp.Hours, day)
	}

	return resp, nil
}

// UpdateHours заменяет часы работы на переданные дни, только владелец
func (s *Service) UpdateHours(ctx context.Context, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("UpdateHours: business=%d, user=%d, days=%d", req.BusinessID, req.UserID, len(req.Hours))

	// 1. Валидируем входные данные
	rows, err := toDomainHours(req)
	if err != nil {
		s.logger.Warn("UpdateHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права владельца
	business, err := s.getBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if !business.IsOwnedBy(req.UserID) {
		s.logger.Warn("UpdateHours: user=%d is not the owner of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 3. Сохраняем дни в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, row := range rows {
			if err := s.hoursRepo.Upsert(txCtx, row); err != nil {
				return fmt.Errorf("%w: upsert weekday %d: %w", ErrInternal, row.Weekday, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateHours: failed to save hours for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	s.logger.Info("UpdateHours: saved %d days for business=%d", len(rows), req.BusinessID)
	return s.GetHours(ctx, req.BusinessID)
}

func (s *Service) getBusiness(ctx context.Context, businessID int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("getBusiness: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("getBusiness: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: getBusiness - repository error: %w", ErrInternal, err)
	}
	return business, nil
}

// toDomainHours проверяет дни: номер 0..6 без повторов, HH:MM, открытие раньше закрытия
func toDomainHours(req *models.UpdateHoursRequest) ([]*domain.BusinessHours, error) {
	if len(req.Hours) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	seen := make(map[domain.Weekday]bool, len(req.Hours))
	rows := make([]*domain.BusinessHours, 0, len(req.Hours))

	for _, day := range req.Hours {
		weekday := domain.Weekday(day.Weekday)
		if !weekday.IsValid() {
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6, got %d", ErrInvalidInput, day.Weekday)
		}
		if seen[weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, day.Weekday)
		}
		seen[weekday] = true

		row := &domain.BusinessHours{
			BusinessID: req.BusinessID,
			Weekday:    weekday,
			IsClosed:   day.IsClosed,
		}

		if !day.IsClosed {
			open, err := types.NewTimeStringFromString(day.OpeningTime)
			if err != nil {
				return nil, fmt.Errorf("%w: %s opening_time: %w", ErrInvalidInput, weekday, err)
			}
			closing, err := types.NewTimeStringFromString(day.ClosingTime)
			if err != nil {
				return nil, fmt.Errorf("%w: %s closing_time: %w", ErrInvalidInput, weekday, err)
			}
			if !open.IsBefore(closing) {
				return nil, fmt.Errorf("%w: %s opening_time must be before closing_time", ErrInvalidInput, weekday)
			}
			row.OpeningTime = open
			row.ClosingTime = closing
		}

		rows = append(rows, row)
	}

	return rows, nil
}
