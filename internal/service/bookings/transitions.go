package bookings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/bookings/models"
)

// transition описание перехода статуса
type transition struct {
	op        string
	target    domain.BookingStatus
	ownerOnly bool
	allowed   func(b *domain.Booking) bool
	// spent изменение total_spent клиента для оплаченной брони
	spent func(b *domain.Booking) float64
	// notices уведомления клиенту после перехода
	notices func(b *domain.Booking) []*domain.Notification
}

// Confirm pending -> confirmed, только владелец
func (s *Service) Confirm(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	return s.apply(ctx, bookingID, userID, transition{
		op:        "Confirm",
		target:    domain.StatusConfirmed,
		ownerOnly: true,
		allowed:   (*domain.Booking).CanBeConfirmed,
		notices: func(b *domain.Booking) []*domain.Notification {
			return []*domain.Notification{notice(b, domain.NotificationBookingConfirmed, "Booking confirmed",
				fmt.Sprintf("Your booking for %s on %s is confirmed", b.ServiceName, when(b)))}
		},
	})
}

// Cancel отмена клиентом или владельцем; оплаченная бронь уменьшает total_spent
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	return s.apply(ctx, bookingID, userID, transition{
		op:      "Cancel",
		target:  domain.StatusCancelled,
		allowed: (*domain.Booking).CanBeCancelled,
		spent: func(b *domain.Booking) float64 {
			return -b.TotalPrice
		},
		notices: func(b *domain.Booking) []*domain.Notification {
			return []*domain.Notification{notice(b, domain.NotificationBookingCancelled, "Booking cancelled",
				fmt.Sprintf("Your booking for %s on %s was cancelled", b.ServiceName, when(b)))}
		},
	})
}

// Complete confirmed -> completed, только владелец; клиент получает запрос отзыва
func (s *Service) Complete(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	return s.apply(ctx, bookingID, userID, transition{
		op:        "Complete",
		target:    domain.StatusCompleted,
		ownerOnly: true,
		allowed:   (*domain.Booking).CanBeCompleted,
		spent: func(b *domain.Booking) float64 {
			return b.TotalPrice
		},
		notices: func(b *domain.Booking) []*domain.Notification {
			return []*domain.Notification{
				notice(b, domain.NotificationGeneral, "Booking completed",
					fmt.Sprintf("Your visit for %s on %s is completed", b.ServiceName, when(b))),
				notice(b, domain.NotificationReviewRequest, "How was your visit?",
					fmt.Sprintf("Leave a review for %s", b.BusinessName)),
			}
		},
	})
}

// MarkNoShow клиент не пришёл, только владелец
func (s *Service) MarkNoShow(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	return s.apply(ctx, bookingID, userID, transition{
		op:        "MarkNoShow",
		target:    domain.StatusNoShow,
		ownerOnly: true,
		allowed: func(b *domain.Booking) bool {
			return b.OccupiesTime()
		},
		notices: func(b *domain.Booking) []*domain.Notification {
			return []*domain.Notification{notice(b, domain.NotificationGeneral, "Missed booking",
				fmt.Sprintf("You were marked as absent for %s on %s", b.ServiceName, when(b)))}
		},
	})
}

// UpdateStatus переход по имени статуса от владельца компании
func (s *Service) UpdateStatus(ctx context.Context, bookingID, userID int64, status string) (*models.BookingResponse, error) {
	target, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", status, bookingID)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	switch target {
	case domain.StatusConfirmed:
		return s.Confirm(ctx, bookingID, userID)
	case domain.StatusCompleted:
		return s.Complete(ctx, bookingID, userID)
	case domain.StatusNoShow:
		return s.MarkNoShow(ctx, bookingID, userID)
	case domain.StatusCancelled:
		return s.Cancel(ctx, bookingID, userID)
	default:
		return nil, fmt.Errorf("%w: cannot move booking back to %s", ErrInvalidTransition, target)
	}
}

func (s *Service) apply(ctx context.Context, bookingID, userID int64, t transition) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%d by user=%d", t.op, bookingID, userID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, t.op, bookingID)
		if err != nil {
			return err
		}

		business, err := s.checkUserAccess(txCtx, booking, userID)
		if err != nil {
			return err
		}
		isOwner := business.IsOwnedBy(userID)
		if t.ownerOnly && !isOwner {
			return ErrAccessDenied
		}

		if !t.allowed(booking) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, t.target)
		}

		previous := booking.Status
		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, t.target); err != nil {
			return fmt.Errorf("%w: %s - update status: %w", ErrInternal, t.op, err)
		}
		booking.Status = t.target

		if booking.IsPaid && t.spent != nil {
			if err := s.customerRepo.AddSpent(txCtx, booking.CustomerID, t.spent(booking)); err != nil {
				return fmt.Errorf("%w: %s - update customer stats: %w", ErrInternal, t.op, err)
			}
		}

		notices := t.notices(booking)
		// клиент сам отменил - владельцу тоже сообщаем
		if t.target == domain.StatusCancelled && !isOwner {
			owner := notice(booking, domain.NotificationBookingCancelled, "Booking cancelled by customer",
				fmt.Sprintf("Booking for %s on %s was cancelled by the customer", booking.ServiceName, when(booking)))
			owner.UserID = business.OwnerID
			notices = append(notices, owner)
		}
		for _, n := range notices {
			if err := s.notifier.Notify(txCtx, n); err != nil {
				return fmt.Errorf("%w: %s - notify: %w", ErrInternal, t.op, err)
			}
		}

		event := domain.NewBookingEvent(booking)
		event.PreviousStatus = string(previous)
		if err := s.outboxRepo.Enqueue(txCtx, domain.EventBookingStatusChanged, strconv.FormatInt(booking.ID, 10), event); err != nil {
			return fmt.Errorf("%w: %s - enqueue event: %w", ErrInternal, t.op, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: booking id=%d: %v", t.op, bookingID, err)
		} else {
			s.logger.Warn("%s: booking id=%d: %v", t.op, bookingID, err)
		}
		return nil, err
	}

	s.logger.Info("%s: booking id=%d is now %s", t.op, bookingID, result.Status)
	return models.FromDomainBooking(result), nil
}

func notice(b *domain.Booking, kind domain.NotificationType, title, message string) *domain.Notification {
	return &domain.Notification{
		UserID:     b.CustomerID,
		BusinessID: &b.BusinessID,
		BookingID:  &b.ID,
		Type:       kind,
		Title:      title,
		Message:    message,
	}
}

func when(b *domain.Booking) string {
	return fmt.Sprintf("%s at %s", b.BookingDate.Format(domain.DateFormat), b.StartTime)
}
