package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Booking represents one reservation of a playground time window
type Booking struct {
	ID           uuid.UUID
	PlaygroundID int64
	CustomerID   int64
	BookingDate  time.Time // calendar date, time of day is ignored
	StartTime    types.TimeString
	EndTime      types.TimeString
	// DurationHours derived from end - start
	DurationHours decimal.Decimal

	Status            BookingStatus
	PaymentStatus     PaymentStatus
	PaymentMethod     PaymentMethod
	PaymentReceiptRef *string

	// Price snapshot taken at creation. Later slot or playground price edits never change it.
	PricePerHour   decimal.Decimal
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	AmenityFees    decimal.Decimal
	FinalAmount    decimal.Decimal
	Currency       string

	RefundAmount decimal.Decimal
	RefundStatus RefundStatus

	SelectedAmenities []string
	SlotDefinitionID  *int64 // custom slot or pass the booking was made for
	SlotKind          *SlotKind
	CouponCode        *string

	NumberOfPlayers    int
	SpecialRequests    *string
	CancellationReason *string

	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Window returns the booking's [start, end) interval
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartTime, End: b.EndTime}
}

// StartAt returns the absolute start instant of the booking in loc
func (b *Booking) StartAt(loc *time.Location) (time.Time, error) {
	return b.StartTime.On(b.BookingDate, loc)
}

// EndAt returns the absolute end instant of the booking in loc
func (b *Booking) EndAt(loc *time.Location) (time.Time, error) {
	return b.EndTime.On(b.BookingDate, loc)
}

// IsOccupying returns true if the booking blocks its window for other bookings
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// CanBeCancelled returns true if the status allows cancellation and the
// minimum cancellation notice before start is still met at now
func (b *Booking) CanBeCancelled(now time.Time, loc *time.Location) bool {
	if !b.Status.CanTransitionTo(StatusCancelled) {
		return false
	}
	start, err := b.StartAt(loc)
	if err != nil {
		return false
	}
	return now.Before(start.Add(-CancellationNotice))
}

// CanBeRescheduled returns true if the booking is still active and the
// minimum reschedule notice before start is still met at now
func (b *Booking) CanBeRescheduled(now time.Time, loc *time.Location) bool {
	if !b.Status.IsOccupying() {
		return false
	}
	start, err := b.StartAt(loc)
	if err != nil {
		return false
	}
	return now.Before(start.Add(-RescheduleNotice))
}

// HasEnded returns true if the booking window is over at now
func (b *Booking) HasEnded(now time.Time, loc *time.Location) bool {
	end, err := b.EndAt(loc)
	if err != nil {
		return false
	}
	return !now.Before(end)
}

// IsOwnedBy returns true if the booking was made by the customer
func (b *Booking) IsOwnedBy(customerID int64) bool {
	return b.CustomerID == customerID
}

// InitialStatus picks the status a new booking starts in: confirmed when the
// playground auto-approves or the payment is instant with a receipt attached
func InitialStatus(autoApproval bool, method PaymentMethod, receiptRef *string) BookingStatus {
	if autoApproval {
		return StatusConfirmed
	}
	if method.IsInstant() && receiptRef != nil && *receiptRef != "" {
		return StatusConfirmed
	}
	return StatusPending
}

// BookingsFilter filter for listing bookings of a playground or a customer
type BookingsFilter struct {
	PlaygroundID    *int64
	CustomerID      *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // include cancelled, completed and no-show bookings
}
