package events

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Type тип события жизненного цикла бронирования, используется как routing key
type Type string

const (
	BookingCreated     Type = "booking.created"
	BookingConfirmed   Type = "booking.confirmed"
	BookingCancelled   Type = "booking.cancelled"
	BookingRescheduled Type = "booking.rescheduled"
	BookingCompleted   Type = "booking.completed"
	BookingNoShow      Type = "booking.no_show"
)

// TypeForStatus событие, соответствующее переходу в статус
func TypeForStatus(status domain.BookingStatus) (Type, bool) {
	switch status {
	case domain.StatusConfirmed:
		return BookingConfirmed, true
	case domain.StatusCancelled:
		return BookingCancelled, true
	case domain.StatusCompleted:
		return BookingCompleted, true
	case domain.StatusNoShow:
		return BookingNoShow, true
	default:
		return "", false
	}
}

// BookingEvent сообщение, публикуемое после фиксации изменения бронирования
type BookingEvent struct {
	Type         Type      `json:"type"`
	BookingID    string    `json:"booking_id"`
	PlaygroundID int64     `json:"playground_id"`
	CustomerID   int64     `json:"customer_id"`
	Status       string    `json:"status"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	FinalAmount  string    `json:"final_amount"`
	RefundAmount string    `json:"refund_amount,omitempty"`
	Currency     string    `json:"currency"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewBookingEvent строит событие из состояния бронирования
func NewBookingEvent(eventType Type, booking *domain.Booking, at time.Time) BookingEvent {
	event := BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID.String(),
		PlaygroundID: booking.PlaygroundID,
		CustomerID:   booking.CustomerID,
		Status:       string(booking.Status),
		Date:         booking.BookingDate.Format(domain.DateFormat),
		StartTime:    booking.StartTime.String(),
		EndTime:      booking.EndTime.String(),
		FinalAmount:  booking.FinalAmount.StringFixed(domain.MoneyScale),
		Currency:     booking.Currency,
		OccurredAt:   at.UTC(),
	}
	if booking.RefundAmount.IsPositive() {
		event.RefundAmount = booking.RefundAmount.StringFixed(domain.MoneyScale)
	}
	return event
}
