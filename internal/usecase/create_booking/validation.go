package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса и проставляет значения по умолчанию
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}

	if req.PlaygroundID <= 0 {
		return fmt.Errorf("%w: playgroundID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotDefinitionID != nil {
		if *req.SlotDefinitionID <= 0 {
			return fmt.Errorf("%w: slotDefinitionId must be positive", ErrInvalidInput)
		}
	} else {
		if req.StartTime.IsZero() || req.EndTime.IsZero() {
			return fmt.Errorf("%w: startTime and endTime are required without slotDefinitionId", ErrInvalidInput)
		}
		if err := validateWindow(req.StartTime, req.EndTime); err != nil {
			return err
		}
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentCashOnDelivery
	}
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.NumberOfPlayers == 0 {
		req.NumberOfPlayers = 1
	}
	if req.NumberOfPlayers < 1 || req.NumberOfPlayers > domain.MaxNumberOfPlayers {
		return fmt.Errorf("%w: numberOfPlayers must be between 1 and %d", ErrInvalidInput, domain.MaxNumberOfPlayers)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests must be at most %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	if len(req.AmenityIDs) > domain.MaxAmenitiesPerBooking {
		return fmt.Errorf("%w: at most %d amenities allowed", ErrInvalidInput, domain.MaxAmenitiesPerBooking)
	}

	if req.DiscountCode != nil && strings.TrimSpace(*req.DiscountCode) == "" {
		req.DiscountCode = nil
	}

	return nil
}

// validateWindow проверяет формат и порядок границ окна.
// Бронирование занимает одну дату, переход через полночь не допускается.
func validateWindow(start, end types.TimeString) error {
	window := domain.TimeWindow{Start: start, End: end}
	if err := window.Validate(); err != nil {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, start, end)
	}
	return nil
}

// validateTiming проверяет, что начало еще не наступило и дата в пределах горизонта бронирования
func validateTiming(playground *domain.Playground, date time.Time, start types.TimeString, now time.Time, loc *time.Location) error {
	startAt, err := start.On(date, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	if !now.Before(startAt) {
		return ErrBookingInPast
	}

	if playground.IsBeyondAdvanceWindow(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, playground.AdvanceBookingDays)
	}

	return nil
}

// validateOperatingHours проверяет, что окно целиком попадает в рабочие часы площадки
func validateOperatingHours(playground *domain.Playground, date time.Time, window domain.TimeWindow) error {
	hours, open := playground.HoursOn(date)
	if !open {
		return fmt.Errorf("%w: %s", ErrPlaygroundClosed, domain.DayOfWeekFromDate(date))
	}

	if !hours.Contains(window) {
		return fmt.Errorf("%w: open %s-%s", ErrOutsideOperatingHours, hours.Open, hours.Close)
	}

	return nil
}

// validateCapacity проверяет вместимость площадки; 0 - без ограничения
func validateCapacity(playground *domain.Playground, players int) error {
	if playground.Capacity > 0 && players > playground.Capacity {
		return fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, playground.Capacity)
	}
	return nil
}
