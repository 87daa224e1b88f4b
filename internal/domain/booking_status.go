package domain

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// validTransitions defines the booking state machine. Terminal states have no exits.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsOccupying returns true if a booking in this status blocks its time window.
func (s BookingStatus) IsOccupying() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// OccupyingStatuses statuses counted by conflict detection and availability
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// PaymentStatus represents the payment state of a booking.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod is the way a customer pays for a booking.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMobileBanking  PaymentMethod = "mobile_banking"
	PaymentCard           PaymentMethod = "card"
	PaymentOnline         PaymentMethod = "online"
	PaymentWallet         PaymentMethod = "wallet"
)

// IsValid returns true if the payment method is known.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentBankTransfer, PaymentMobileBanking,
		PaymentCard, PaymentOnline, PaymentWallet:
		return true
	default:
		return false
	}
}

// IsInstant returns true if the payment settles immediately and can be proven by a receipt.
func (m PaymentMethod) IsInstant() bool {
	return m.IsValid() && m != PaymentCashOnDelivery
}

// RefundStatus represents the state of a refund owed after cancellation.
type RefundStatus string

const (
	RefundNotApplicable RefundStatus = "not_applicable"
	RefundPending       RefundStatus = "pending"
	RefundProcessed     RefundStatus = "processed"
	RefundCompleted     RefundStatus = "completed"
)
