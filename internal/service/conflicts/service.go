package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Detector проверяет пересечение окна с занимающими бронированиями площадки
type Detector struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewDetector создает новый детектор конфликтов
func NewDetector(bookingRepo BookingRepository, logger Logger) *Detector {
	return &Detector{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// HasConflict возвращает true, если окно [start, end) пересекается хотя бы с одним
// pending/confirmed бронированием той же площадки и даты, кроме exclude.
// Внутри транзакции строки блокируются, поэтому проверка и последующая запись атомарны.
func (d *Detector) HasConflict(ctx context.Context, playgroundID int64, date time.Time, window domain.TimeWindow, exclude *uuid.UUID) (bool, error) {
	conflicts, err := d.find(ctx, playgroundID, date, window, exclude)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// Check возвращает *ConflictError со списком пересечений, если окно занято
func (d *Detector) Check(ctx context.Context, playgroundID int64, date time.Time, window domain.TimeWindow, exclude *uuid.UUID) error {
	conflicts, err := d.find(ctx, playgroundID, date, window, exclude)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		d.logger.Warn("Check: playground=%d date=%s window=%s-%s overlaps %d booking(s)",
			playgroundID, date.Format(domain.DateFormat), window.Start, window.End, len(conflicts))
		return newConflictError(conflicts)
	}
	return nil
}

func (d *Detector) find(ctx context.Context, playgroundID int64, date time.Time, window domain.TimeWindow, exclude *uuid.UUID) ([]*domain.Booking, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, window.Start, window.End)
	}

	candidates, err := d.bookingRepo.FindOverlapping(ctx, playgroundID, date, window, exclude)
	if err != nil {
		d.logger.Error("HasConflict: failed to load bookings for playground=%d date=%s: %v",
			playgroundID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: HasConflict - repository error: %w", ErrInternal, err)
	}

	// Репозиторий уже фильтрует по SQL; правило пересечения применяется повторно в домене
	return domain.FindConflicts(candidates, window, exclude), nil
}
