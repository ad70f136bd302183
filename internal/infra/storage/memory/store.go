// Package memory хранилище в памяти процесса. Используется в тестах и в режиме
// storage.driver = "memory" для локального запуска без PostgreSQL.
package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rings-s/booking/internal/domain"
)

var (
	ErrBusinessNotFound     = fmt.Errorf("memory: business %w", domain.ErrNotFound)
	ErrServiceNotFound      = fmt.Errorf("memory: service %w", domain.ErrNotFound)
	ErrHoursNotFound        = fmt.Errorf("memory: business hours %w", domain.ErrNotFound)
	ErrBookingNotFound      = fmt.Errorf("memory: booking %w", domain.ErrNotFound)
	ErrReviewNotFound       = fmt.Errorf("memory: review %w", domain.ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("memory: notification %w", domain.ErrNotFound)
	ErrSlotTaken            = fmt.Errorf("memory: %w", domain.ErrSlotTaken)

	// ErrInjected ошибка, которую возвращают репозитории после FailWith
	ErrInjected = errors.New("memory: injected failure")
)

type hoursKey struct {
	businessID int64
	weekday    domain.Weekday
}

type state struct {
	businesses    map[int64]domain.Business
	services      map[int64]domain.Service
	hours         map[hoursKey]domain.BusinessHours
	bookings      map[int64]domain.Booking
	customers     map[int64]domain.CustomerStats
	reviews       map[int64]domain.Review
	notifications map[int64]domain.Notification
	outbox        map[int64]domain.OutboxEvent
	seq           int64
}

func newState() state {
	return state{
		businesses:    make(map[int64]domain.Business),
		services:      make(map[int64]domain.Service),
		hours:         make(map[hoursKey]domain.BusinessHours),
		bookings:      make(map[int64]domain.Booking),
		customers:     make(map[int64]domain.CustomerStats),
		reviews:       make(map[int64]domain.Review),
		notifications: make(map[int64]domain.Notification),
		outbox:        make(map[int64]domain.OutboxEvent),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.hours {
		c.hours[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.reviews {
		c.reviews[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	for k, v := range s.outbox {
		c.outbox[k] = v
	}
	c.seq = s.seq
	return c
}

// Store общее состояние всех репозиториев
type Store struct {
	mu   sync.RWMutex
	tx   sync.Mutex
	data state
	fail error
	now  func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
	}
}

// SetClock подменяет источник времени для created_at/updated_at
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailWith заставляет все операции возвращать err (nil снимает сбой)
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *Store) failure() error {
	if s.fail != nil {
		return fmt.Errorf("%w: %w", ErrInjected, s.fail)
	}
	return nil
}

func (s *Store) txLock() *sync.Mutex {
	return &s.tx
}

func (s *Store) nextID() int64 {
	s.data.seq++
	return s.data.seq
}

// Businesses репозиторий компаний
func (s *Store) Businesses() *BusinessRepository { return &BusinessRepository{s: s} }

// Services репозиторий услуг
func (s *Store) Services() *ServiceRepository { return &ServiceRepository{s: s} }

// Hours репозиторий часов работы
func (s *Store) Hours() *HoursRepository { return &HoursRepository{s: s} }

// Bookings репозиторий броней
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// Customers репозиторий статистики клиентов
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }

// Reviews репозиторий отзывов
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{s: s} }

// Notifications репозиторий уведомлений
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s: s} }

// Outbox репозиторий исходящих событий
func (s *Store) Outbox() *OutboxRepository { return &OutboxRepository{s: s} }

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
