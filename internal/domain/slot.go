package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// DayOfWeek lower-case english weekday name, as used in operating hours and slot definitions
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// DayOfWeekFromDate resolves the weekday name of a calendar date
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	return DayOfWeek(strings.ToLower(date.Weekday().String()))
}

// IsValid returns true for monday..sunday
func (d DayOfWeek) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	default:
		return false
	}
}

// SlotKind distinguishes how a slot is priced and how long it lasts
type SlotKind string

const (
	// SlotKindRegular weekly recurring slot priced by the hour unless it carries an override
	SlotKindRegular SlotKind = "regular"
	// SlotKindCustom premium slot with a flat price and its own duration
	SlotKindCustom SlotKind = "custom"
	// SlotKindPass membership pass with a flat price and its own duration
	SlotKindPass SlotKind = "pass"
)

// IsValid returns true if the kind is known
func (k SlotKind) IsValid() bool {
	return k == SlotKindRegular || k == SlotKindCustom || k == SlotKindPass
}

// IsFlatRate returns true if the slot price does not depend on the hourly rate
func (k SlotKind) IsFlatRate() bool {
	return k == SlotKindCustom || k == SlotKindPass
}

// SlotDefinition is the declarative shape of a bookable weekly time window
type SlotDefinition struct {
	ID           int64
	PlaygroundID int64
	DayOfWeek    DayOfWeek
	StartTime    types.TimeString
	EndTime      types.TimeString
	Kind         SlotKind
	Price        *decimal.Decimal // overrides the playground hourly rate when set
	Currency     string
	MaxBookings  int
	Active       bool
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Window returns the slot's [start, end) interval
func (s *SlotDefinition) Window() TimeWindow {
	return TimeWindow{Start: s.StartTime, End: s.EndTime}
}

// DurationHours length of the slot in fractional hours
func (s *SlotDefinition) DurationHours() (decimal.Decimal, error) {
	minutes, err := s.Window().DurationMinutes()
	if err != nil {
		return decimal.Zero, err
	}
	return MinutesToHours(minutes), nil
}

// Validate checks invariants of a slot definition before it is stored
func (s *SlotDefinition) Validate() error {
	if !s.DayOfWeek.IsValid() {
		return fmt.Errorf("invalid day of week %q", s.DayOfWeek)
	}
	if !s.Kind.IsValid() {
		return fmt.Errorf("invalid slot kind %q", s.Kind)
	}
	if err := s.Window().Validate(); err != nil {
		return err
	}
	if s.MaxBookings < 1 || s.MaxBookings > MaxBookingsPerSlot {
		return fmt.Errorf("max bookings must be between 1 and %d", MaxBookingsPerSlot)
	}
	if s.Price != nil && s.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if s.Kind.IsFlatRate() && s.Price == nil {
		return fmt.Errorf("%s slot requires a price", s.Kind)
	}
	return nil
}

// UnavailableReason explains why a slot cannot be booked
type UnavailableReason string

const (
	ReasonPastTime UnavailableReason = "past_time"
	ReasonTooFar   UnavailableReason = "too_far"
	ReasonBooked   UnavailableReason = "booked"
	ReasonClosed   UnavailableReason = "closed"
)

// SlotView is one candidate slot of a date annotated with its availability
type SlotView struct {
	SlotDefinitionID int64
	StartTime        types.TimeString
	EndTime          types.TimeString
	Kind             SlotKind
	IsAvailable      bool
	Price            decimal.Decimal
	Currency         string
	Reason           *UnavailableReason
	Occupied         int
	MaxBookings      int
}

var minutesPerHour = decimal.NewFromInt(60)

// MinutesToHours converts minutes to fractional hours without rounding
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}
