package memory

import (
	"context"
	"sort"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// NotificationRepository уведомления в памяти
type NotificationRepository struct {
	s *Store
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	n.ID = r.s.nextID()
	n.CreatedAt = r.s.now()
	r.s.data.notifications[n.ID] = *n

	created := *n
	return &created, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	result := make([]*domain.Notification, 0)
	for _, n := range r.s.data.notifications {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		n := n
		result = append(result, &n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return 0, err
	}
	count := 0
	for _, n := range r.s.data.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	n, ok := r.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return ErrNotificationNotFound
	}
	if !n.IsRead {
		n.IsRead = true
		n.ReadAt = &at
		r.s.data.notifications[id] = n
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return 0, err
	}
	var updated int64
	for id, n := range r.s.data.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &at
			r.s.data.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

func (r *NotificationRepository) DeleteRead(ctx context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return 0, err
	}
	var deleted int64
	for id, n := range r.s.data.notifications {
		if n.UserID == userID && n.IsRead {
			delete(r.s.data.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
