package outbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultPollEvery = 2 * time.Second
	defaultBatchSize = 50
)

// Config настройки публикации
type Config struct {
	PollEvery   time.Duration
	BatchSize   int
	TopicPrefix string // топик = префикс + тип события

	// ClaimRows держит выбранные строки под блокировкой до отметки о публикации.
	// Нужен для PostgreSQL с несколькими воркерами; без него пачка выбирается
	// вне транзакции, а в транзакции только проставляется published_at.
	ClaimRows bool
}

// Publisher переносит события из outbox_events в Kafka
type Publisher struct {
	store     Store
	writer    MessageWriter
	txManager TransactionManager
	logger    Logger
	cfg       Config
	now       func() time.Time
}

// NewWriter создает *kafka.Writer для списка брокеров через запятую; nil, если брокеров нет
func NewWriter(brokers string) *kafka.Writer {
	list := SplitBrokers(brokers)
	if len(list) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(list...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
	}
}

// SplitBrokers разбирает строку "host1:9092,host2:9092"
func SplitBrokers(brokers string) []string {
	var result []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			result = append(result, b)
		}
	}
	return result
}

func NewPublisher(store Store, writer MessageWriter, txManager TransactionManager, logger Logger, cfg Config) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = defaultPollEvery
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if w, ok := writer.(*kafka.Writer); ok && w == nil {
		writer = nil
	}
	return &Publisher{
		store:     store,
		writer:    writer,
		txManager: txManager,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run публикует события до отмены контекста
func (p *Publisher) Run(ctx context.Context) {
	if p.writer == nil {
		p.logger.Warn("OutboxPublisher: disabled, no kafka brokers configured")
		return
	}
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("OutboxPublisher: failed to close writer: %v", err)
		}
	}()

	p.logger.Info("OutboxPublisher: started, poll=%s, batch=%d", p.cfg.PollEvery, p.cfg.BatchSize)

	ticker := time.NewTicker(p.cfg.PollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("OutboxPublisher: stopped")
			return
		case <-ticker.C:
			if _, err := p.PublishBatch(ctx); err != nil {
				p.logger.Error("OutboxPublisher: publish failed: %v", err)
			}
		}
	}
}

// PublishBatch публикует одну пачку событий и возвращает их количество.
// При ошибке записи в Kafka published_at не проставляется, пачка будет отправлена повторно.
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	var (
		published int
		err       error
	)
	if p.cfg.ClaimRows {
		err = p.txManager.Do(ctx, func(txCtx context.Context) error {
			published, err = p.publish(txCtx, p.store.MarkPublished)
			return err
		})
	} else {
		published, err = p.publish(ctx, func(ctx context.Context, ids []int64, at time.Time) error {
			return p.txManager.Do(ctx, func(txCtx context.Context) error {
				return p.store.MarkPublished(txCtx, ids, at)
			})
		})
	}
	if err != nil {
		return 0, err
	}

	if published > 0 {
		p.logger.Info("OutboxPublisher: published %d events", published)
	}
	return published, nil
}

func (p *Publisher) publish(ctx context.Context, markPublished func(ctx context.Context, ids []int64, at time.Time) error) (int, error) {
	events, err := p.store.FetchUnpublished(ctx, p.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch unpublished: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, kafka.Message{
			Topic: p.cfg.TopicPrefix + e.EventType,
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(e.EventID)},
				{Key: "event_type", Value: []byte(e.EventType)},
			},
		})
		ids = append(ids, e.ID)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("write messages: %w", err)
	}

	if err := markPublished(ctx, ids, p.now()); err != nil {
		return 0, fmt.Errorf("mark published: %w", err)
	}

	return len(events), nil
}
