package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/rings-s/booking/pkg/dbmetrics"
	"github.com/rings-s/booking/pkg/txmanager"
)

// sqlDB адаптирует *sql.DB к txmanager.TxBeginner
type sqlDB struct {
	db *sql.DB
}

func (s sqlDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return s.db.BeginTx(ctx, opts)
}

// NewTransactionManager менеджер транзакций поверх *sql.DB без сбора метрик
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(sqlDB{db: db})
}
