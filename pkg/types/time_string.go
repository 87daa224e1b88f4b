package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"
	minutesPerDay     = 24 * 60
)

var (
	// ErrInvalidTimeString is returned when a value is not a valid HH:MM time of day
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic moves a time of day outside of 00:00-23:59
	ErrTimeOverflow = errors.New("time string overflow")
)

// TimeString is a time of day in "HH:MM" form.
// It maps to a PostgreSQL TIME column.
type TimeString string

// NewTimeString builds a TimeString from the clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses "HH:MM" or "HH:MM:SS" (seconds are dropped)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{timeLayout, timeLayoutSeconds} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeString(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String returns the HH:MM representation
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the HH:MM format
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes returns minutes since midnight
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// mustMinutes is used by comparisons; invalid values sort before midnight
func (t TimeString) mustMinutes() int {
	m, err := t.Minutes()
	if err != nil {
		return -1
	}
	return m
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.mustMinutes() < other.mustMinutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.mustMinutes() > other.mustMinutes()
}

// Equal reports whether both values denote the same minute
func (t TimeString) Equal(other TimeString) bool {
	return t.mustMinutes() == other.mustMinutes()
}

// AddMinutes shifts the time of day, failing if the result leaves the day
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// MinutesUntil returns other - t in minutes (negative if other is earlier)
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	start, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := other.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// On combines the time of day with the calendar date of day in loc
func (t TimeString) On(day time.Time, loc *time.Location) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. lib/pq returns TIME columns as "HH:MM:SS" bytes.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}
