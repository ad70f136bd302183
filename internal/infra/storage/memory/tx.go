package memory

import "context"

type txKey struct{}

// TxManager сериализует транзакции и откатывает состояние при ошибке
type TxManager struct {
	s *Store
}

// TxManager возвращает менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов выполняется в рамках внешней транзакции
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	lock := m.s.txLock()
	lock.Lock()
	defer lock.Unlock()

	m.s.mu.RLock()
	snapshot := m.s.data.clone()
	m.s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			m.s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			m.s.restore(snapshot)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) restore(snapshot state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snapshot
}
