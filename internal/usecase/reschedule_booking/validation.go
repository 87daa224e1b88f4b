package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}
	if err := window.Validate(); err != nil {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, req.StartTime, req.EndTime)
	}

	return nil
}

// validateNewWindow проверяет новое окно: начало в будущем, дата в пределах горизонта, рабочие часы
func validateNewWindow(playground *domain.Playground, date time.Time, window domain.TimeWindow, now time.Time, loc *time.Location) error {
	startAt, err := window.Start.On(date, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	if !now.Before(startAt) {
		return ErrBookingInPast
	}

	if playground.IsBeyondAdvanceWindow(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, playground.AdvanceBookingDays)
	}

	hours, open := playground.HoursOn(date)
	if !open {
		return fmt.Errorf("%w: %s", ErrPlaygroundClosed, domain.DayOfWeekFromDate(date))
	}

	if !hours.Contains(window) {
		return fmt.Errorf("%w: open %s-%s", ErrOutsideOperatingHours, hours.Open, hours.Close)
	}

	return nil
}
