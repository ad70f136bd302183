package memory

import (
	"context"
	"sort"

	"github.com/rings-s/booking/internal/domain"
)

// BusinessRepository компании в памяти
type BusinessRepository struct {
	s *Store
}

// Add сохраняет компанию; ID назначается, если не задан
func (r *BusinessRepository) Add(b *domain.Business) *domain.Business {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.ID == 0 {
		b.ID = r.s.nextID()
	}
	if b.SubscriptionTier == "" {
		b.SubscriptionTier = domain.TierFree
	}
	r.s.data.businesses[b.ID] = *b
	return b
}

func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	b, ok := r.s.data.businesses[id]
	if !ok {
		return nil, ErrBusinessNotFound
	}
	return &b, nil
}

// ServiceRepository услуги в памяти
type ServiceRepository struct {
	s *Store
}

// Add сохраняет услугу; ID назначается, если не задан
func (r *ServiceRepository) Add(svc *domain.Service) *domain.Service {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = r.s.nextID()
	}
	r.s.data.services[svc.ID] = *svc
	return svc
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	svc, ok := r.s.data.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return &svc, nil
}

// HoursRepository часы работы в памяти
type HoursRepository struct {
	s *Store
}

func (r *HoursRepository) GetByBusinessAndWeekday(ctx context.Context, businessID int64, weekday domain.Weekday) (*domain.BusinessHours, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	h, ok := r.s.data.hours[hoursKey{businessID: businessID, weekday: weekday}]
	if !ok {
		return nil, ErrHoursNotFound
	}
	return &h, nil
}

func (r *HoursRepository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.BusinessHours, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	result := make([]*domain.BusinessHours, 0, 7)
	for key, h := range r.s.data.hours {
		if key.businessID == businessID {
			h := h
			result = append(result, &h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Weekday < result[j].Weekday })
	return result, nil
}

// Upsert создает или заменяет часы работы на день недели
func (r *HoursRepository) Upsert(ctx context.Context, hours *domain.BusinessHours) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	key := hoursKey{businessID: hours.BusinessID, weekday: hours.Weekday}
	if existing, ok := r.s.data.hours[key]; ok {
		hours.ID = existing.ID
	} else {
		hours.ID = r.s.nextID()
	}
	r.s.data.hours[key] = *hours
	return nil
}
