package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
)

var (
	// ErrSerialization транзакция откатилась из-за конфликта сериализации или уникальности
	ErrSerialization = errors.New("txmanager: serialization failure")
	ErrBeginTx       = errors.New("txmanager: begin transaction")
	ErrCommitTx      = errors.New("txmanager: commit transaction")
)

// Коды ошибок PostgreSQL, означающие проигрыш в гонке за ресурс
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqUniqueViolation      = "23505"
	pqExclusionViolation   = "23P01"
)

// TxBeginner источник транзакций (*dbmetrics.DB или *sql.DB через адаптер)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции, передавая её через контекст
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return classify(err)
	}

	if err = tx.Commit(); err != nil {
		return classify(fmt.Errorf("%w: %w", ErrCommitTx, err))
	}

	return nil
}

// IsSerializationError проверяет, что ошибка вызвана конкурентной транзакцией
func IsSerializationError(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case pqSerializationFailure, pqDeadlockDetected, pqUniqueViolation, pqExclusionViolation:
		return true
	default:
		return false
	}
}

// classify добавляет ErrSerialization к ошибкам конкурентного доступа, сохраняя исходную цепочку
func classify(err error) error {
	if errors.Is(err, ErrSerialization) || !IsSerializationError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSerialization, err)
}

// SQLDB адаптирует *sql.DB к TxBeginner
type SQLDB struct {
	*sql.DB
}

func (d SQLDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := d.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
}
