package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/psqlbuilder"
)

const tableName = "coupons"

// Repository репозиторий купонов на скидку
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает купон по коду (без учета регистра)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"discount_type",
		"discount_value",
		"minimum_amount",
		"max_uses",
		"used_count",
		"valid_from",
		"valid_until",
		"active",
		"created_at",
	).
		From(tableName).
		Where(squirrel.Eq{"UPPER(code)": strings.ToUpper(strings.TrimSpace(code))}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var (
		coupon  domain.Coupon
		maxUses sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MinimumAmount,
		&maxUses,
		&coupon.UsedCount,
		&coupon.ValidFrom,
		&coupon.ValidUntil,
		&coupon.Active,
		&coupon.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %w", ErrScanRow, err)
	}

	if maxUses.Valid {
		limit := int(maxUses.Int64)
		coupon.MaxUses = &limit
	}

	return &coupon, nil
}

// IncrementUsage увеличивает счетчик использований, не превышая max_uses
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("used_count", squirrel.Expr("used_count + 1")).
		Where(squirrel.Eq{"id": id}).
		Where("(max_uses IS NULL OR used_count < max_uses)").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCouponExhausted
	}

	return nil
}
