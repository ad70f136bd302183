package bookings

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	customerRepo CustomerRepository
	outboxRepo   OutboxRepository
	notifier     Notifier
	exporter     Exporter
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	notifier Notifier,
	exporter Exporter,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		outboxRepo:   outboxRepo,
		notifier:     notifier,
		exporter:     exporter,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту брони и владельцу компании
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings брони клиента: upcoming, history или все
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64, scope string) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, scope=%s", customerID, scope)

	domainScope, err := models.ToDomainScope(scope)
	if err != nil {
		s.logger.Warn("GetCustomerBookings: invalid scope=%s", scope)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, customerID, domainScope, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), customerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBusinessBookings брони компании с фильтрами, только для владельца
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if _, err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// ExportBusinessBookings пишет в w выгрузку броней компании за период
func (s *Service) ExportBusinessBookings(ctx context.Context, req *models.ExportRequest, w io.Writer) error {
	s.logger.Info("ExportBusinessBookings: business=%d, user=%d, period=%s to %s",
		req.BusinessID, req.UserID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return fmt.Errorf("%w: valid from and to dates are required", ErrInvalidInput)
	}

	business, err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return err
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID: req.BusinessID,
		StartDate:  &req.From,
		EndDate:    &req.To,
	})
	if err != nil {
		s.logger.Error("ExportBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return fmt.Errorf("%w: ExportBusinessBookings - repository error: %w", ErrInternal, err)
	}

	if err := s.exporter.WriteBookings(w, business.Name, bookings); err != nil {
		s.logger.Error("ExportBusinessBookings: failed to render export: %v", err)
		return fmt.Errorf("%w: ExportBusinessBookings - render: %w", ErrInternal, err)
	}

	s.logger.Info("ExportBusinessBookings: exported %d bookings for business=%d", len(bookings), req.BusinessID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
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

// checkUserAccess клиент брони или владелец компании
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) (*domain.Business, error) {
	business, err := s.getBusiness(ctx, booking.BusinessID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != userID && !business.IsOwnedBy(userID) {
		return nil, ErrAccessDenied
	}
	return business, nil
}

// checkOwnerAccess проверяет, что пользователь владеет компанией
func (s *Service) checkOwnerAccess(ctx context.Context, businessID int64, userID int64) (*domain.Business, error) {
	business, err := s.getBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of business=%d", userID, businessID)
		return nil, ErrAccessDenied
	}
	return business, nil
}
