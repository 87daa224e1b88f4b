package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// temporalReason причина недоступности слота по времени: прошедший слот или дата за горизонтом бронирования.
// Прошедшие слоты имеют приоритет.
func temporalReason(playground *domain.Playground, date time.Time, start types.TimeString, now time.Time) *domain.UnavailableReason {
	if domain.DateBefore(date, now) {
		return reason(domain.ReasonPastTime)
	}
	if domain.SameDay(date, now) && !start.IsAfter(types.NewTimeString(now)) {
		return reason(domain.ReasonPastTime)
	}
	if playground.IsBeyondAdvanceWindow(date, now) {
		return reason(domain.ReasonTooFar)
	}
	return nil
}

// annotateSlot заполняет доступность слота.
// Занятость считается по пересечению с окном слота, а не по точному совпадению.
func annotateSlot(view *domain.SlotView, slot *domain.SlotDefinition, bookings []*domain.Booking, timeReason *domain.UnavailableReason) {
	view.Occupied = domain.CountOverlapping(bookings, slot.Window())
	view.MaxBookings = slot.MaxBookings
	if view.MaxBookings < 1 {
		view.MaxBookings = domain.DefaultMaxBookings
	}

	switch {
	case timeReason != nil:
		view.IsAvailable = false
		view.Reason = timeReason
	case view.Occupied >= view.MaxBookings:
		view.IsAvailable = false
		view.Reason = reason(domain.ReasonBooked)
	default:
		view.IsAvailable = true
		view.Reason = nil
	}
}

func reason(r domain.UnavailableReason) *domain.UnavailableReason {
	return &r
}
