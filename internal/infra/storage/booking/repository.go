package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/psqlbuilder"
)

const (
	tableName = "bookings"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"playground_id",
	"customer_id",
	"booking_date",
	"start_time",
	"end_time",
	"duration_hours",
	"status",
	"payment_status",
	"payment_method",
	"payment_receipt_ref",
	"price_per_hour",
	"total_amount",
	"discount_amount",
	"amenity_fees",
	"final_amount",
	"currency",
	"refund_amount",
	"refund_status",
	"selected_amenities",
	"slot_definition_id",
	"slot_kind",
	"coupon_code",
	"number_of_players",
	"special_requests",
	"cancellation_reason",
	"confirmed_at",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Проверка пересечений должна выполняться в той же транзакции (см. FindOverlapping).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	var slotKind *string
	if booking.SlotKind != nil {
		kind := string(*booking.SlotKind)
		slotKind = &kind
	}

	amenities := booking.SelectedAmenities
	if amenities == nil {
		amenities = []string{}
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"playground_id",
			"customer_id",
			"booking_date",
			"start_time",
			"end_time",
			"duration_hours",
			"status",
			"payment_status",
			"payment_method",
			"payment_receipt_ref",
			"price_per_hour",
			"total_amount",
			"discount_amount",
			"amenity_fees",
			"final_amount",
			"currency",
			"refund_amount",
			"refund_status",
			"selected_amenities",
			"slot_definition_id",
			"slot_kind",
			"coupon_code",
			"number_of_players",
			"special_requests",
			"confirmed_at",
		).
		Values(
			booking.ID,
			booking.PlaygroundID,
			booking.CustomerID,
			formatDate(booking.BookingDate),
			booking.StartTime,
			booking.EndTime,
			booking.DurationHours,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentMethod,
			booking.PaymentReceiptRef,
			booking.PricePerHour,
			booking.TotalAmount,
			booking.DiscountAmount,
			booking.AmenityFees,
			booking.FinalAmount,
			booking.Currency,
			booking.RefundAmount,
			booking.RefundStatus,
			pq.Array(amenities),
			booking.SlotDefinitionID,
			slotKind,
			booking.CouponCode,
			booking.NumberOfPlayers,
			booking.SpecialRequests,
			booking.ConfirmedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("%w: Create: %w", ErrSlotNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.SelectedAmenities = amenities
	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id.String()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetWithFilter получает бронирования с фильтрацией
// Поддерживает фильтрацию по:
// - площадке и клиенту
// - периоду (StartDate, EndDate)
// - статусу (Status)
// - включению неактивных бронирований (IncludeInactive)
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.PlaygroundID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"playground_id": *filter.PlaygroundID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": formatDate(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": formatDate(*filter.EndDate)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": occupyingStatuses()})
	}

	// Для конкретной даты сортируем по времени начала, иначе сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && domain.SameDay(*filter.StartDate, *filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOccupyingByDate возвращает занимающие слот бронирования (pending, confirmed) площадки на дату
func (r *Repository) GetOccupyingByDate(ctx context.Context, playgroundID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{
			"playground_id": playgroundID,
			"booking_date":  formatDate(date),
			"status":        occupyingStatuses(),
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindOverlapping возвращает занимающие бронирования площадки на дату, пересекающие окно [start, end).
// exclude исключает переносимое бронирование.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindOverlapping(ctx context.Context, playgroundID int64, date time.Time, window domain.TimeWindow, exclude *uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{
			"playground_id": playgroundID,
			"booking_date":  formatDate(date),
			"status":        occupyingStatuses(),
		}).
		// Полуоткрытые интервалы: s1 < e2 AND e1 > s2
		Where(squirrel.Lt{"start_time": window.End}).
		Where(squirrel.Gt{"end_time": window.Start}).
		OrderBy("start_time ASC")

	if exclude != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": exclude.String()})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Transition меняет статус бронирования, если он всё ещё равен change.From
func (r *Repository) Transition(ctx context.Context, id uuid.UUID, change StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("status", change.To).
		Set("updated_at", change.At)

	switch change.To {
	case domain.StatusConfirmed:
		updateBuilder = updateBuilder.Set("confirmed_at", change.At)
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.
			Set("cancelled_at", change.At).
			Set("cancellation_reason", change.CancellationReason)
	case domain.StatusCompleted, domain.StatusNoShow:
		updateBuilder = updateBuilder.Set("completed_at", change.At)
	}

	if change.RefundAmount != nil {
		updateBuilder = updateBuilder.Set("refund_amount", *change.RefundAmount)
	}
	if change.RefundStatus != nil {
		updateBuilder = updateBuilder.Set("refund_status", *change.RefundStatus)
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id.String(), "status": change.From}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Transition - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Transition - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.missingOrChanged(ctx, id)
	}

	return nil
}

// Reschedule переносит бронирование на новое окно, если его статус не изменился
func (r *Repository) Reschedule(ctx context.Context, id uuid.UUID, change RescheduleChange, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("booking_date", formatDate(change.Date)).
		Set("start_time", change.StartTime).
		Set("end_time", change.EndTime).
		Set("duration_hours", change.DurationHours).
		Set("updated_at", at)

	if change.DetachSlot {
		updateBuilder = updateBuilder.
			Set("slot_definition_id", nil).
			Set("slot_kind", nil)
	}

	if change.Price != nil {
		updateBuilder = updateBuilder.
			Set("price_per_hour", change.Price.PricePerHour).
			Set("total_amount", change.Price.TotalAmount).
			Set("discount_amount", change.Price.DiscountAmount).
			Set("amenity_fees", change.Price.AmenityFees).
			Set("final_amount", change.Price.FinalAmount)
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id.String(), "status": change.ExpectedStatus}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("%w: Reschedule: %w", ErrSlotNotAvailable, err)
		}
		return fmt.Errorf("%w: Reschedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.missingOrChanged(ctx, id)
	}

	return nil
}

// missingOrChanged различает отсутствующее бронирование и проигранный compare-and-set
func (r *Repository) missingOrChanged(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusChanged
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking  domain.Booking
		slotKind sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.PlaygroundID,
		&booking.CustomerID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentMethod,
		&booking.PaymentReceiptRef,
		&booking.PricePerHour,
		&booking.TotalAmount,
		&booking.DiscountAmount,
		&booking.AmenityFees,
		&booking.FinalAmount,
		&booking.Currency,
		&booking.RefundAmount,
		&booking.RefundStatus,
		pq.Array(&booking.SelectedAmenities),
		&booking.SlotDefinitionID,
		&slotKind,
		&booking.CouponCode,
		&booking.NumberOfPlayers,
		&booking.SpecialRequests,
		&booking.CancellationReason,
		&booking.ConfirmedAt,
		&booking.CancelledAt,
		&booking.CompletedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if slotKind.Valid {
		kind := domain.SlotKind(slotKind.String)
		booking.SlotKind = &kind
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func occupyingStatuses() []string {
	statuses := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// formatDate передает дату в PostgreSQL как DATE без учета часового пояса
func formatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}
