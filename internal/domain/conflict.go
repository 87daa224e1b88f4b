package domain

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// TimeWindow is a half-open interval [Start, End) within a single day
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks that both bounds parse and Start < End
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return ErrInvalidTimeWindow
	}
	if err := w.End.Validate(); err != nil {
		return ErrInvalidTimeWindow
	}
	if !w.Start.IsBefore(w.End) {
		return ErrInvalidTimeWindow
	}
	return nil
}

// Overlaps reports whether two windows share any instant.
// Touching windows (a.End == b.Start) do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.IsBefore(other.End) && w.End.IsAfter(other.Start)
}

// Equal reports whether both bounds match exactly
func (w TimeWindow) Equal(other TimeWindow) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// DurationMinutes length of the window in minutes
func (w TimeWindow) DurationMinutes() (int, error) {
	minutes, err := w.Start.MinutesUntil(w.End)
	if err != nil {
		return 0, err
	}
	if minutes <= 0 {
		return 0, ErrInvalidTimeWindow
	}
	return minutes, nil
}

// FindConflicts returns the occupying bookings whose window overlaps candidate,
// skipping the booking with id exclude. Bookings are expected to belong to the
// same playground and date as the candidate.
func FindConflicts(existing []*Booking, candidate TimeWindow, exclude *uuid.UUID) []*Booking {
	var conflicts []*Booking
	for _, b := range existing {
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if !b.IsOccupying() {
			continue
		}
		if b.Window().Overlaps(candidate) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// HasConflict reports whether candidate overlaps any occupying booking other than exclude
func HasConflict(existing []*Booking, candidate TimeWindow, exclude *uuid.UUID) bool {
	return len(FindConflicts(existing, candidate, exclude)) > 0
}

// CountOverlapping number of occupying bookings overlapping the window
func CountOverlapping(existing []*Booking, window TimeWindow) int {
	return len(FindConflicts(existing, window, nil))
}
