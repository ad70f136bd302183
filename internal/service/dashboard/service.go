package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/internal/service/dashboard/models"
)

// Service сервис дашборда владельца
type Service struct {
	bookings     BookingStats
	ratings      RatingStats
	businessRepo BusinessRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	bookings BookingStats,
	ratings RatingStats,
	businessRepo BusinessRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookings:     bookings,
		ratings:      ratings,
		businessRepo: businessRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// window включительный диапазон дат
type window struct {
	from time.Time
	to   time.Time
}

// windows текущий период, заканчивающийся сегодня, и такой же период перед ним
func (s *Service) windows(period domain.StatsPeriod) (window, window) {
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := period.Days()

	current := window{from: today.AddDate(0, 0, -(days - 1)), to: today}
	previousTo := current.from.AddDate(0, 0, -1)
	previous := window{from: previousTo.AddDate(0, 0, -(days - 1)), to: previousTo}
	return current, previous
}

// Stats показатели за период с изменением к предыдущему периоду
func (s *Service) Stats(ctx context.Context, businessID, userID int64, period string) (*models.StatsResponse, error) {
	s.logger.Info("Stats: business=%d, user=%d, period=%s", businessID, userID, period)

	p, err := s.prepare(ctx, businessID, userID, period)
	if err != nil {
		return nil, err
	}
	current, previous := s.windows(p)

	cur, err := s.bookings.Summary(ctx, businessID, current.from, current.to)
	if err != nil {
		return nil, s.internal("Stats", "current summary", err)
	}
	prev, err := s.bookings.Summary(ctx, businessID, previous.from, previous.to)
	if err != nil {
		return nil, s.internal("Stats", "previous summary", err)
	}

	rating, err := s.ratings.AverageRating(ctx, businessID)
	if err != nil {
		return nil, s.internal("Stats", "rating", err)
	}

	return &models.StatsResponse{
		BusinessID:    businessID,
		Period:        string(p),
		From:          current.from.Format(domain.DateFormat),
		To:            current.to.Format(domain.DateFormat),
		Revenue:       metric(cur.Revenue, prev.Revenue),
		Bookings:      metric(float64(cur.Bookings), float64(prev.Bookings)),
		Confirmed:     metric(float64(cur.Confirmed), float64(prev.Confirmed)),
		Customers:     metric(float64(cur.Customers), float64(prev.Customers)),
		AverageRating: ratingMetric(rating),
	}, nil
}

// ChartData количество броней по статусам за каждый день периода
func (s *Service) ChartData(ctx context.Context, businessID, userID int64, period string) (*models.ChartResponse, error) {
	s.logger.Info("ChartData: business=%d, user=%d, period=%s", businessID, userID, period)

	p, err := s.prepare(ctx, businessID, userID, period)
	if err != nil {
		return nil, err
	}
	current, _ := s.windows(p)

	counts, err := s.bookings.DailyCounts(ctx, businessID, current.from, current.to)
	if err != nil {
		return nil, s.internal("ChartData", "daily counts", err)
	}

	byDay := make(map[string]domain.DailyCount, len(counts))
	for _, c := range counts {
		byDay[c.Date.Format(domain.DateFormat)] = c
	}

	resp := &models.ChartResponse{
		BusinessID: businessID,
		Period:     string(p),
		Points:     make([]models.ChartPoint, 0, p.Days()),
	}
	for day := current.from; !day.After(current.to); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DateFormat)
		c := byDay[key]
		resp.Points = append(resp.Points, models.ChartPoint{
			Date:      key,
			Confirmed: c.Confirmed,
			Pending:   c.Pending,
			Cancelled: c.Cancelled,
			Total:     c.Total,
		})
	}

	return resp, nil
}

// prepare пустой период - месяц
func (s *Service) prepare(ctx context.Context, businessID, userID int64, period string) (domain.StatsPeriod, error) {
	p := domain.StatsPeriod(period)
	if period == "" {
		p = domain.PeriodMonth
	}
	if !p.IsValid() {
		s.logger.Warn("prepare: invalid period=%s", period)
		return "", fmt.Errorf("%w: period must be week, month, quarter or year", ErrInvalidInput)
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrBusinessNotFound
		}
		return "", s.internal("prepare", "get business", err)
	}
	if !business.IsOwnedBy(userID) {
		s.logger.Warn("prepare: user=%d is not the owner of business=%d", userID, businessID)
		return "", ErrAccessDenied
	}

	return p, nil
}

func (s *Service) internal(op, what string, err error) error {
	s.logger.Error("%s: failed to load %s: %v", op, what, err)
	return fmt.Errorf("%w: %s - %s: %w", ErrInternal, op, what, err)
}

func metric(current, previous float64) models.Metric {
	return models.Metric{
		Value:    round(current, 2),
		Previous: round(previous, 2),
		Change:   percentChange(current, previous),
	}
}

// ratingMetric рейтинг по всем отзывам; истории рейтинга нет, поэтому изменение 0
func ratingMetric(avg float64) models.Metric {
	v := round(avg, 1)
	return models.Metric{Value: v, Previous: v}
}

// percentChange рост к предыдущему периоду; при нулевой базе 0
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round((current-previous)/previous*100, 1)
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
