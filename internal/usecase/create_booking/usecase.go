package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	outboxRepo   OutboxRepository
	validator    Validator
	users        UserDirectory
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	validator Validator,
	users UserDirectory,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		outboxRepo:   outboxRepo,
		validator:    validator,
		users:        users,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, business=%d, service=%d, date=%s, time=%s-%s",
		req.CustomerID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingRejected("invalid_input")
		return nil, err
	}

	// 2. Имя клиента для уведомления владельцу (вне транзакции, сетевой вызов)
	customerName := uc.users.DisplayName(ctx, req.CustomerID)

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Проверяем заявку: ссылки, время, часы работы, пересечения, вместимость
		prepared, err := uc.validator.ValidateAndPrepare(txCtx, availability.Candidate{
			BusinessID: req.BusinessID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
		})
		if err != nil {
			return err
		}

		business := prepared.Business
		service := prepared.Service

		// 3.2. Компания принимает онлайн-бронирования
		if !business.AcceptsOnlineBookings {
			return ErrOnlineBookingDisabled
		}

		// 3.3. Месячный лимит тарифа
		limits := domain.LimitsForTier(business.SubscriptionTier)
		if limits.MaxMonthlyBookings > 0 {
			since := monthStart(uc.timeProvider.Now())
			count, err := uc.bookingRepo.CountCreatedSince(txCtx, business.ID, since)
			if err != nil {
				return fmt.Errorf("%w: failed to count monthly bookings: %w", ErrInternal, err)
			}
			if !limits.AllowsMonthlyBookings(count) {
				uc.logger.Warn("CreateBooking: business=%d reached monthly limit %d (tier=%s)",
					business.ID, limits.MaxMonthlyBookings, limits.Tier)
				return ErrMonthlyLimitReached
			}
		}

		// 3.4. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			BusinessID:    business.ID,
			ServiceID:     service.ID,
			CustomerID:    req.CustomerID,
			BookingDate:   prepared.Date,
			StartTime:     prepared.StartTime,
			EndTime:       prepared.EndTime,
			Status:        business.InitialBookingStatus(),
			TotalPrice:    service.Price,
			Notes:         req.Notes,
			PaymentMethod: req.PaymentMethod,
			ServiceName:   service.Name,
			BusinessName:  business.Name,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, domain.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 3.5. Статистика клиента
		if err := uc.customerRepo.IncrementBookings(txCtx, req.CustomerID); err != nil {
			return fmt.Errorf("%w: failed to update customer stats: %w", ErrInternal, err)
		}

		// 3.6. Уведомления владельцу и клиенту
		if err := uc.notify(txCtx, created, business, customerName); err != nil {
			return fmt.Errorf("%w: failed to notify: %w", ErrInternal, err)
		}

		// 3.7. Событие в outbox
		if err := uc.outboxRepo.Enqueue(txCtx, domain.EventBookingCreated, strconv.FormatInt(created.ID, 10), domain.NewBookingEvent(created)); err != nil {
			return fmt.Errorf("%w: failed to enqueue event: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		reason := rejectionReason(err)
		uc.metrics.IncBookingRejected(reason)

		if reason == "internal" {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			if errors.Is(err, ErrInternal) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}

		uc.logger.Warn("CreateBooking: rejected (%s): %v", reason, err)
		return nil, err
	}

	uc.metrics.IncBookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	return toResponse(result), nil
}

func (uc *UseCase) notify(ctx context.Context, b *domain.Booking, business *domain.Business, customerName string) error {
	when := fmt.Sprintf("%s at %s", b.BookingDate.Format(domain.DateFormat), b.StartTime)

	owner := &domain.Notification{
		UserID:     business.OwnerID,
		BusinessID: &b.BusinessID,
		BookingID:  &b.ID,
		Type:       domain.NotificationGeneral,
		Title:      "New booking",
		Message:    fmt.Sprintf("%s booked %s on %s", customerName, b.ServiceName, when),
	}
	if err := uc.notifier.Notify(ctx, owner); err != nil {
		return err
	}

	customer := &domain.Notification{
		UserID:     b.CustomerID,
		BusinessID: &b.BusinessID,
		BookingID:  &b.ID,
		Type:       domain.NotificationGeneral,
		Title:      "Booking request sent",
		Message:    fmt.Sprintf("Your booking for %s at %s on %s is awaiting confirmation", b.ServiceName, b.BusinessName, when),
	}
	if b.Status == domain.StatusConfirmed {
		customer.Type = domain.NotificationBookingConfirmed
		customer.Title = "Booking confirmed"
		customer.Message = fmt.Sprintf("Your booking for %s at %s on %s is confirmed", b.ServiceName, b.BusinessName, when)
	}
	return uc.notifier.Notify(ctx, customer)
}

func rejectionReason(err error) string {
	if reason, ok := availability.ReasonOf(err); ok {
		return reason
	}
	switch {
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, ErrMonthlyLimitReached):
		return "monthly_limit_reached"
	case errors.Is(err, ErrOnlineBookingDisabled):
		return "online_booking_disabled"
	default:
		return "internal"
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		BusinessID:    b.BusinessID,
		ServiceID:     b.ServiceID,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		TotalPrice:    b.TotalPrice,
		IsPaid:        b.IsPaid,
		Notes:         b.Notes,
		PaymentMethod: b.PaymentMethod,
		ServiceName:   b.ServiceName,
		BusinessName:  b.BusinessName,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
