package memory

import (
	"context"

	"github.com/rings-s/booking/internal/domain"
)

// CustomerRepository статистика клиентов в памяти
type CustomerRepository struct {
	s *Store
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.CustomerStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	stats, ok := r.s.data.customers[userID]
	if !ok {
		return &domain.CustomerStats{UserID: userID}, nil
	}
	return &stats, nil
}

func (r *CustomerRepository) IncrementBookings(ctx context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	stats := r.s.data.customers[userID]
	stats.UserID = userID
	stats.TotalBookings++
	r.s.data.customers[userID] = stats
	return nil
}

func (r *CustomerRepository) AddSpent(ctx context.Context, userID int64, delta float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	stats := r.s.data.customers[userID]
	stats.UserID = userID
	stats.TotalSpent += delta
	if stats.TotalSpent < 0 {
		stats.TotalSpent = 0
	}
	r.s.data.customers[userID] = stats
	return nil
}
