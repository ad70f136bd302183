package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/notifications/models"
)

// Service сервис уведомлений пользователей
type Service struct {
	notificationRepo NotificationRepository
	outboxRepo       OutboxRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	notificationRepo NotificationRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		outboxRepo:       outboxRepo,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Notify сохраняет уведомление и ставит в outbox событие notification.created.
// Внутри внешней транзакции выполняется в её рамках.
func (s *Service) Notify(ctx context.Context, n *domain.Notification) error {
	if n.UserID <= 0 || n.Title == "" {
		return fmt.Errorf("%w: userID and title are required", ErrInvalidInput)
	}
	if n.Type == "" {
		n.Type = domain.NotificationGeneral
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.notificationRepo.Create(txCtx, n)
		if err != nil {
			return fmt.Errorf("%w: failed to create notification: %w", ErrInternal, err)
		}

		event := domain.NotificationEvent{
			NotificationID: created.ID,
			UserID:         created.UserID,
			Type:           string(created.Type),
			Title:          created.Title,
			Message:        created.Message,
		}
		if err := s.outboxRepo.Enqueue(txCtx, domain.EventNotificationCreated, strconv.FormatInt(created.ID, 10), event); err != nil {
			return fmt.Errorf("%w: failed to enqueue event: %w", ErrInternal, err)
		}

		n.ID = created.ID
		n.CreatedAt = created.CreatedAt
		return nil
	})
	if err != nil {
		s.logger.Error("Notify: user=%d, type=%s: %v", n.UserID, n.Type, err)
		return err
	}

	s.logger.Info("Notify: notification id=%d sent to user=%d, type=%s", n.ID, n.UserID, n.Type)
	return nil
}

// List возвращает уведомления пользователя и число непрочитанных
func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool) (*models.NotificationListResponse, error) {
	s.logger.Info("List: fetching notifications for user=%d, unread_only=%t", userID, unreadOnly)

	list, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("List: failed to count unread for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - count unread: %w", ErrInternal, err)
	}

	resp := &models.NotificationListResponse{
		Notifications: make([]models.NotificationResponse, 0, len(list)),
		UnreadCount:   unread,
	}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, models.FromDomainNotification(n))
	}

	return resp, nil
}

// MarkRead отмечает уведомление прочитанным. Повторная отметка не меняет read_at.
func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	s.logger.Info("MarkRead: notification id=%d, user=%d", id, userID)

	if err := s.notificationRepo.MarkRead(ctx, id, userID, s.timeProvider.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %w", ErrInternal, err)
	}

	return nil
}

// MarkAllRead отмечает все уведомления пользователя прочитанными
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (*models.AffectedResponse, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: MarkAllRead - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: %d notifications marked for user=%d", updated, userID)
	return &models.AffectedResponse{Affected: updated}, nil
}

// ClearRead удаляет прочитанные уведомления пользователя
func (s *Service) ClearRead(ctx context.Context, userID int64) (*models.AffectedResponse, error) {
	deleted, err := s.notificationRepo.DeleteRead(ctx, userID)
	if err != nil {
		s.logger.Error("ClearRead: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ClearRead - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ClearRead: %d notifications deleted for user=%d", deleted, userID)
	return &models.AffectedResponse{Affected: deleted}, nil
}
