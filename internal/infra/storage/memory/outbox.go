package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rings-s/booking/internal/domain"
)

// OutboxRepository исходящие события в памяти
type OutboxRepository struct {
	s *Store
}

func (r *OutboxRepository) Enqueue(ctx context.Context, eventType, aggregateID string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("memory: marshal outbox payload: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	id := r.s.nextID()
	r.s.data.outbox[id] = domain.OutboxEvent{
		ID:          id,
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     data,
		CreatedAt:   r.s.now(),
	}
	return nil
}

func (r *OutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	result := make([]*domain.OutboxEvent, 0)
	for _, e := range r.s.data.outbox {
		if e.PublishedAt == nil {
			e := e
			result = append(result, &e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	for _, id := range ids {
		if e, ok := r.s.data.outbox[id]; ok {
			e.PublishedAt = &at
			r.s.data.outbox[id] = e
		}
	}
	return nil
}

// Events все события по порядку записи
func (r *OutboxRepository) Events() []domain.OutboxEvent {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]domain.OutboxEvent, 0, len(r.s.data.outbox))
	for _, e := range r.s.data.outbox {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
