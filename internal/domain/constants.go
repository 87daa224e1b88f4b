package domain

import "time"

// Lifecycle policy
const (
	// CancellationNotice minimum time before start for a booking to be cancelled,
	// also the lower bound of the 50% refund band
	CancellationNotice = 24 * time.Hour
	// FullRefundNotice minimum time before start for a full refund
	FullRefundNotice = 48 * time.Hour
	// RescheduleNotice minimum time before the current start for a reschedule
	RescheduleNotice = 2 * time.Hour
)

// Default configuration values
const (
	DefaultMaxBookings        = 1
	DefaultAdvanceBookingDays = 0 // 0 = unlimited
	DefaultCurrency           = "BDT"

	// DefaultSlotMinutes length of a regular slot created without an end time
	DefaultSlotMinutes = 60
	// DefaultCustomSlotHours length of a custom slot or pass created without an end time
	DefaultCustomSlotHours = 2
)

// Keys of the playground custom_pricing configuration
const (
	CustomPricingSlotDuration       = "default_slot_duration"   // minutes
	CustomPricingCustomSlotDuration = "default_custom_duration" // hours
)

// Business validation constants
const (
	MaxBookingsPerSlot          = 100
	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
	MaxNumberOfPlayers          = 100
	MaxAmenitiesPerBooking      = 50
)

// MoneyScale number of decimal places money is rounded to when displayed or persisted
const MoneyScale = 2

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
