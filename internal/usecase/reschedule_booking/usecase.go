package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rings-s/booking/internal/availability"
	"github.com/rings-s/booking/internal/domain"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	outboxRepo   OutboxRepository
	validator    Validator
	notifier     Notifier
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	outboxRepo OutboxRepository,
	validator Validator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		outboxRepo:   outboxRepo,
		validator:    validator,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute переносит бронь на новое время. Сама бронь не учитывается при проверке пересечений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, date=%s, time=%s-%s",
		req.BookingID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Перенос в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронь с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.2. Права: клиент брони или владелец компании
		business, err := uc.businessRepo.GetByID(txCtx, booking.BusinessID)
		if err != nil {
			return fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
		}
		byCustomer := booking.CustomerID == req.UserID
		if !byCustomer && !business.IsOwnedBy(req.UserID) {
			return ErrAccessDenied
		}

		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status is %s", ErrCannotReschedule, booking.Status)
		}

		// 2.3. Проверка нового времени без учета самой брони
		prepared, err := uc.validator.ValidateAndPrepare(txCtx, availability.Candidate{
			BusinessID:         booking.BusinessID,
			ServiceID:          booking.ServiceID,
			Date:               req.Date,
			StartTime:          req.StartTime,
			EndTime:            req.EndTime,
			ExcludingBookingID: &booking.ID,
		})
		if err != nil {
			return err
		}

		// 2.4. Сохраняем новое время
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, prepared.Date, prepared.StartTime, prepared.EndTime); err != nil {
			if errors.Is(err, domain.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		resp = &Response{
			ID:                booking.ID,
			BusinessID:        booking.BusinessID,
			ServiceID:         booking.ServiceID,
			CustomerID:        booking.CustomerID,
			BookingDate:       prepared.Date,
			StartTime:         prepared.StartTime,
			EndTime:           prepared.EndTime,
			Status:            string(booking.Status),
			PreviousDate:      booking.BookingDate,
			PreviousStartTime: booking.StartTime,
		}

		moved := *booking
		moved.BookingDate = prepared.Date
		moved.StartTime = prepared.StartTime
		moved.EndTime = prepared.EndTime

		// 2.5. Уведомляем другую сторону
		recipient := business.OwnerID
		if !byCustomer {
			recipient = booking.CustomerID
		}
		if err := uc.notifier.Notify(txCtx, &domain.Notification{
			UserID:     recipient,
			BusinessID: &booking.BusinessID,
			BookingID:  &booking.ID,
			Type:       domain.NotificationGeneral,
			Title:      "Booking rescheduled",
			Message: fmt.Sprintf("%s moved from %s %s to %s %s",
				booking.ServiceName,
				booking.BookingDate.Format(domain.DateFormat), booking.StartTime,
				moved.BookingDate.Format(domain.DateFormat), moved.StartTime),
		}); err != nil {
			return fmt.Errorf("%w: failed to notify: %w", ErrInternal, err)
		}

		// 2.6. Событие в outbox
		if err := uc.outboxRepo.Enqueue(txCtx, domain.EventBookingRescheduled, strconv.FormatInt(booking.ID, 10), domain.NewBookingEvent(&moved)); err != nil {
			return fmt.Errorf("%w: failed to enqueue event: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInternal):
			uc.logger.Error("RescheduleBooking: availability check failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
			return nil, err
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrCannotReschedule),
			errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("RescheduleBooking: booking=%d: %v", req.BookingID, err)
			return nil, err
		}

		if _, ok := availability.ReasonOf(err); ok {
			uc.logger.Warn("RescheduleBooking: rejected: %v", err)
			return nil, err
		}

		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s", resp.ID, resp.BookingDate.Format(domain.DateFormat), resp.StartTime)
	return resp, nil
}
