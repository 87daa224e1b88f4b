package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/psqlbuilder"
)

const (
	tableName = "slot_definitions"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"playground_id",
	"day_of_week",
	"start_time",
	"end_time",
	"kind",
	"price",
	"currency",
	"max_bookings",
	"active",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий определений слотов площадок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое определение слота
func (r *Repository) Create(ctx context.Context, slot *domain.SlotDefinition) (*domain.SlotDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"playground_id",
			"day_of_week",
			"start_time",
			"end_time",
			"kind",
			"price",
			"currency",
			"max_bookings",
			"active",
			"description",
		).
		Values(
			slot.PlaygroundID,
			slot.DayOfWeek,
			slot.StartTime,
			slot.EndTime,
			slot.Kind,
			nullDecimal(slot.Price),
			slot.Currency,
			slot.MaxBookings,
			slot.Active,
			slot.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// GetByID получает определение слота площадки по ID
func (r *Repository) GetByID(ctx context.Context, playgroundID, id int64) (*domain.SlotDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id, "playground_id": playgroundID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// GetByPlayground получает определения слотов площадки.
// day == nil - все дни недели. Порядок: день, время начала, затем порядок добавления.
func (r *Repository) GetByPlayground(ctx context.Context, playgroundID int64, day *domain.DayOfWeek, activeOnly bool) ([]*domain.SlotDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"playground_id": playgroundID})

	if day != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"day_of_week": *day})
	}
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.
		OrderBy(
			"CASE day_of_week WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3 "+
				"WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6 ELSE 7 END",
			"start_time ASC",
			"id ASC",
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPlayground - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPlayground - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.SlotDefinition, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPlayground - scan slot: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPlayground - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// Deactivate выключает определение слота.
// Строка не удаляется: бронирования продолжают ссылаться на неё.
func (r *Repository) Deactivate(ctx context.Context, playgroundID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "playground_id": playgroundID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.SlotDefinition, error) {
	var (
		slot  domain.SlotDefinition
		price decimal.NullDecimal
	)

	err := row.Scan(
		&slot.ID,
		&slot.PlaygroundID,
		&slot.DayOfWeek,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Kind,
		&price,
		&slot.Currency,
		&slot.MaxBookings,
		&slot.Active,
		&slot.Description,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if price.Valid {
		slot.Price = &price.Decimal
	}

	return &slot, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
