package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

var (
	ErrAmenityPriceMalformed = errors.New("amenity price is malformed")
	ErrAmenityPriceNegative  = errors.New("amenity price is negative")
)

// OperatingHours opening window of a playground on one weekday
type OperatingHours struct {
	Open   types.TimeString
	Close  types.TimeString
	Active bool
}

// Contains reports whether window lies within the opening window.
// Malformed or inverted hours impose no bound.
func (h OperatingHours) Contains(window TimeWindow) bool {
	if h.Open.Validate() != nil || h.Close.Validate() != nil || !h.Open.IsBefore(h.Close) {
		return true
	}
	return !window.Start.IsBefore(h.Open) && !window.End.IsAfter(h.Close)
}

// Amenity optional extra a customer can add to a booking
type Amenity struct {
	ID   string
	Name string
	// Price raw JSON value as stored by the catalogue: may be null, a number, a string or garbage
	Price json.RawMessage
}

// ParsePrice decodes the raw amenity price. A missing or null price is free.
func (a Amenity) ParsePrice() (decimal.Decimal, error) {
	raw := strings.TrimSpace(string(a.Price))
	if raw == "" || raw == "null" {
		return decimal.Zero, nil
	}

	var price decimal.Decimal
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(a.Price, &s); err != nil {
			return decimal.Zero, ErrAmenityPriceMalformed
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, ErrAmenityPriceMalformed
		}
		price = parsed
	} else {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, ErrAmenityPriceMalformed
		}
		price = parsed
	}

	if price.IsNegative() {
		return decimal.Zero, ErrAmenityPriceNegative
	}
	return price, nil
}

// Playground configuration of a venue, owned by the playground catalogue
type Playground struct {
	ID                 int64
	OwnerID            int64
	Name               string
	PricePerHour       decimal.Decimal
	Currency           string
	Capacity           int
	OperatingHours     map[DayOfWeek]OperatingHours
	AdvanceBookingDays int // 0 = unlimited
	AutoApproval       bool
	Amenities          []Amenity
	CustomPricing      map[string]json.RawMessage
}

// HoursOn returns the operating hours for the date's weekday and whether the playground is open
func (p *Playground) HoursOn(date time.Time) (OperatingHours, bool) {
	hours, ok := p.OperatingHours[DayOfWeekFromDate(date)]
	if !ok || !hours.Active {
		return OperatingHours{}, false
	}
	return hours, true
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *Playground) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// IsBeyondAdvanceWindow reports whether date is later than today + advance booking days.
// Both dates are compared as calendar days.
func (p *Playground) IsBeyondAdvanceWindow(date, today time.Time) bool {
	if !p.HasAdvanceBookingLimit() {
		return false
	}
	limit := truncateToDay(today).AddDate(0, 0, p.AdvanceBookingDays)
	return truncateToDay(date).After(limit)
}

// FindAmenity looks up an amenity by id
func (p *Playground) FindAmenity(id string) (Amenity, bool) {
	for _, a := range p.Amenities {
		if a.ID == id {
			return a, true
		}
	}
	return Amenity{}, false
}

// IsOwnedBy returns true if the user owns the playground
func (p *Playground) IsOwnedBy(userID int64) bool {
	return p.OwnerID == userID
}

// DefaultSlotMinutes length of a new slot of the given kind when the owner
// gives no end time. The playground's custom_pricing may override the defaults;
// non-positive or non-integer values there are ignored.
func (p *Playground) DefaultSlotMinutes(kind SlotKind) int {
	if kind.IsFlatRate() {
		if hours, ok := p.customPricingInt(CustomPricingCustomSlotDuration); ok {
			return hours * 60
		}
		return DefaultCustomSlotHours * 60
	}
	if minutes, ok := p.customPricingInt(CustomPricingSlotDuration); ok {
		return minutes
	}
	return DefaultSlotMinutes
}

func (p *Playground) customPricingInt(key string) (int, bool) {
	raw, ok := p.CustomPricing[key]
	if !ok {
		return 0, false
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// EffectiveCurrency falls back to the default currency
func (p *Playground) EffectiveCurrency() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}

// truncateToDay drops the time of day keeping the calendar date, in UTC
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same calendar date
func SameDay(a, b time.Time) bool {
	return truncateToDay(a).Equal(truncateToDay(b))
}

// DateBefore reports whether a's calendar date is before b's
func DateBefore(a, b time.Time) bool {
	return truncateToDay(a).Before(truncateToDay(b))
}
