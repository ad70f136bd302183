package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/rings-s/booking/internal/domain"
	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/psqlbuilder"
)

var (
	// ErrMarshalPayload возвращается, если полезную нагрузку нельзя сериализовать в JSON
	ErrMarshalPayload = errors.New("outbox.repository: failed to marshal payload")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("outbox.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("outbox.repository: failed to scan row")
)

const defaultBatchSize = 100

// Repository таблица outbox_events. Запись идет в транзакции бизнес-операции,
// публикация выполняется отдельным воркером.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue записывает событие с новым event_id
func (r *Repository) Enqueue(ctx context.Context, eventType, aggregateID string, payload interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshalPayload, err)
	}

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("event_id", "event_type", "aggregate_id", "payload").
		Values(uuid.NewString(), eventType, aggregateID, data).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Enqueue - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Enqueue - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// FetchUnpublished неопубликованные события в порядке записи.
// В транзакции строки блокируются с SKIP LOCKED, чтобы несколько воркеров не брали одно событие.
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if limit <= 0 {
		limit = defaultBatchSize
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "event_id", "event_type", "aggregate_id", "payload", "created_at").
		From("outbox_events").
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("id ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.OutboxEvent, 0, limit)
	for rows.Next() {
		var e domain.OutboxEvent
		var createdAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.EventID, &e.EventType, &e.AggregateID, &e.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - scan row: %w", ErrScanRow, err)
		}
		e.CreatedAt = createdAt.Time
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}

// MarkPublished проставляет published_at для переданных событий
func (r *Repository) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("published_at", at).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %w", ErrExecQuery, err)
	}

	return nil
}
