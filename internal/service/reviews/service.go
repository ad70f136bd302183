package reviews

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/reviews/models"
)

// ReviewEvent полезная нагрузка review.created
type ReviewEvent struct {
	ReviewID   int64 `json:"review_id"`
	BusinessID int64 `json:"business_id"`
	CustomerID int64 `json:"customer_id"`
	Rating     int   `json:"rating"`
	IsVerified bool  `json:"is_verified"`
}

// Service сервис отзывов
type Service struct {
	reviewRepo   ReviewRepository
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	outboxRepo   OutboxRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	outboxRepo OutboxRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		outboxRepo:   outboxRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create создает отзыв. Отзыв по завершённой брони этого клиента и компании помечается проверенным.
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review from user=%d for business=%d, rating=%d", req.UserID, req.BusinessID, req.Rating)

	// 1. Валидация
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if utf8.RuneCountInString(req.Comment) > domain.MaxReviewCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
	}

	var created *domain.Review

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Компания
		business, err := s.getBusiness(txCtx, req.BusinessID)
		if err != nil {
			return err
		}

		review := &domain.Review{
			BusinessID: business.ID,
			CustomerID: req.UserID,
			BookingID:  req.BookingID,
			Rating:     req.Rating,
			Comment:    strings.TrimSpace(req.Comment),
		}

		// 3. Бронь: одна на отзыв, своя и этой компании
		if req.BookingID != nil {
			verified, err := s.checkBooking(txCtx, *req.BookingID, req.UserID, business.ID)
			if err != nil {
				return err
			}
			review.IsVerified = verified
		}

		created, err = s.reviewRepo.Create(txCtx, review)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}

		// 4. Уведомление владельцу и событие
		if err := s.notifier.Notify(txCtx, &domain.Notification{
			UserID:     business.OwnerID,
			BusinessID: &business.ID,
			Type:       domain.NotificationGeneral,
			Title:      "New review",
			Message:    fmt.Sprintf("A customer rated %s %d/5", business.Name, created.Rating),
		}); err != nil {
			return fmt.Errorf("%w: Create - notify: %w", ErrInternal, err)
		}

		event := ReviewEvent{
			ReviewID:   created.ID,
			BusinessID: created.BusinessID,
			CustomerID: created.CustomerID,
			Rating:     created.Rating,
			IsVerified: created.IsVerified,
		}
		if err := s.outboxRepo.Enqueue(txCtx, domain.EventReviewCreated, strconv.FormatInt(created.ID, 10), event); err != nil {
			return fmt.Errorf("%w: Create - enqueue event: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		s.logError("Create", err)
		return nil, err
	}

	s.logger.Info("Create: review id=%d created, verified=%t", created.ID, created.IsVerified)
	return models.FromDomainReview(created), nil
}

// ListByBusiness отзывы компании: закреплённые первыми, затем новые
func (s *Service) ListByBusiness(ctx context.Context, businessID int64, minRating int) (*models.ReviewListResponse, error) {
	s.logger.Info("ListByBusiness: business=%d, min_rating=%d", businessID, minRating)

	if minRating < 0 || minRating > domain.MaxRating {
		return nil, fmt.Errorf("%w: min rating must be between 0 and %d", ErrInvalidInput, domain.MaxRating)
	}

	if _, err := s.getBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	list, err := s.reviewRepo.ListByBusiness(ctx, businessID, minRating)
	if err != nil {
		s.logger.Error("ListByBusiness: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %w", ErrInternal, err)
	}

	resp := &models.ReviewListResponse{Reviews: make([]models.ReviewResponse, 0, len(list))}
	sum := 0
	for _, r := range list {
		resp.Reviews = append(resp.Reviews, *models.FromDomainReview(r))
		sum += r.Rating
	}
	resp.Count = len(resp.Reviews)
	if resp.Count > 0 {
		resp.AverageRating = math.Round(float64(sum)/float64(resp.Count)*100) / 100
	}

	return resp, nil
}

// Respond ответ владельца на отзыв; клиент получает уведомление
func (s *Service) Respond(ctx context.Context, reviewID, userID int64, response string) (*models.ReviewResponse, error) {
	s.logger.Info("Respond: review id=%d by user=%d", reviewID, userID)

	response = strings.TrimSpace(response)
	if response == "" || utf8.RuneCountInString(response) > domain.MaxReviewResponseLength {
		return nil, fmt.Errorf("%w: response must be 1..%d characters", ErrInvalidInput, domain.MaxReviewResponseLength)
	}

	var updated *domain.Review

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		review, business, err := s.getOwnedReview(txCtx, reviewID, userID)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		if err := s.reviewRepo.Respond(txCtx, review.ID, response, now); err != nil {
			return fmt.Errorf("%w: Respond - repository error: %w", ErrInternal, err)
		}
		review.BusinessResponse = &response
		review.ResponseDate = &now

		if err := s.notifier.Notify(txCtx, &domain.Notification{
			UserID:     review.CustomerID,
			BusinessID: &business.ID,
			Type:       domain.NotificationGeneral,
			Title:      "Response to your review",
			Message:    fmt.Sprintf("%s responded to your review", business.Name),
		}); err != nil {
			return fmt.Errorf("%w: Respond - notify: %w", ErrInternal, err)
		}

		updated = review
		return nil
	})
	if err != nil {
		s.logError("Respond", err)
		return nil, err
	}

	return models.FromDomainReview(updated), nil
}

// MarkFeatured закрепляет или открепляет отзыв, только владелец
func (s *Service) MarkFeatured(ctx context.Context, reviewID, userID int64, featured bool) (*models.ReviewResponse, error) {
	s.logger.Info("MarkFeatured: review id=%d by user=%d, featured=%t", reviewID, userID, featured)

	review, _, err := s.getOwnedReview(ctx, reviewID, userID)
	if err != nil {
		s.logError("MarkFeatured", err)
		return nil, err
	}

	if err := s.reviewRepo.SetFeatured(ctx, review.ID, featured); err != nil {
		s.logger.Error("MarkFeatured: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: MarkFeatured - repository error: %w", ErrInternal, err)
	}
	review.IsFeatured = featured

	return models.FromDomainReview(review), nil
}

func (s *Service) checkBooking(ctx context.Context, bookingID, userID, businessID int64) (bool, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, fmt.Errorf("%w: booking %d not found", ErrInvalidInput, bookingID)
		}
		return false, fmt.Errorf("%w: get booking: %w", ErrInternal, err)
	}
	if booking.CustomerID != userID || booking.BusinessID != businessID {
		return false, fmt.Errorf("%w: booking %d does not belong to the customer and business", ErrInvalidInput, bookingID)
	}

	exists, err := s.reviewRepo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return false, fmt.Errorf("%w: check existing review: %w", ErrInternal, err)
	}
	if exists {
		return false, ErrAlreadyReviewed
	}

	return booking.Status == domain.StatusCompleted, nil
}

func (s *Service) getOwnedReview(ctx context.Context, reviewID, userID int64) (*domain.Review, *domain.Business, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrReviewNotFound
		}
		return nil, nil, fmt.Errorf("%w: get review: %w", ErrInternal, err)
	}

	business, err := s.getBusiness(ctx, review.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	if !business.IsOwnedBy(userID) {
		return nil, nil, ErrAccessDenied
	}
	return review, business, nil
}

func (s *Service) getBusiness(ctx context.Context, businessID int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: get business: %w", ErrInternal, err)
	}
	return business, nil
}

func (s *Service) logError(op string, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: %v", op, err)
		return
	}
	s.logger.Warn("%s: %v", op, err)
}
