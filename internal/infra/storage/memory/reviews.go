package memory

import (
	"context"
	"sort"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

// ReviewRepository отзывы в памяти
type ReviewRepository struct {
	s *Store
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	review.ID = r.s.nextID()
	review.CreatedAt = r.s.now()
	review.UpdatedAt = review.CreatedAt
	r.s.data.reviews[review.ID] = *review

	created := *review
	return &created, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	review, ok := r.s.data.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return false, err
	}
	for _, review := range r.s.data.reviews {
		if review.BookingID != nil && *review.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReviewRepository) ListByBusiness(ctx context.Context, businessID int64, minRating int) ([]*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return nil, err
	}
	result := make([]*domain.Review, 0)
	for _, review := range r.s.data.reviews {
		if review.BusinessID == businessID && review.Rating >= minRating {
			review := review
			result = append(result, &review)
		}
	}
	// Избранные первыми, затем новые
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsFeatured != result[j].IsFeatured {
			return result[i].IsFeatured
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *ReviewRepository) Respond(ctx context.Context, id int64, response string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	review, ok := r.s.data.reviews[id]
	if !ok {
		return ErrReviewNotFound
	}
	review.BusinessResponse = &response
	review.ResponseDate = &at
	review.UpdatedAt = at
	r.s.data.reviews[id] = review
	return nil
}

func (r *ReviewRepository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure(); err != nil {
		return err
	}
	review, ok := r.s.data.reviews[id]
	if !ok {
		return ErrReviewNotFound
	}
	review.IsFeatured = featured
	review.UpdatedAt = r.s.now()
	r.s.data.reviews[id] = review
	return nil
}

func (r *ReviewRepository) AverageRating(ctx context.Context, businessID int64) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if err := r.s.failure(); err != nil {
		return 0, err
	}
	sum, count := 0, 0
	for _, review := range r.s.data.reviews {
		if review.BusinessID == businessID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}
