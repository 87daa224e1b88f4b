package conflicts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrInvalidWindow возвращается, когда начало окна не раньше конца
	ErrInvalidWindow = fmt.Errorf("conflicts: %w", domain.ErrInvalidTimeWindow)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conflicts: internal error")
)

// Conflict пересечение с существующим бронированием
type Conflict struct {
	BookingID uuid.UUID
	Window    domain.TimeWindow
	Status    domain.BookingStatus
}

// ConflictError окно занято. Содержит пересекающиеся бронирования.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	windows := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		windows = append(windows, fmt.Sprintf("%s-%s", c.Window.Start, c.Window.End))
	}
	return fmt.Sprintf("overlaps booked %s", strings.Join(windows, ", "))
}

// Unwrap позволяет сопоставлять ошибку с domain.ErrSlotUnavailable
func (e *ConflictError) Unwrap() error {
	return domain.ErrSlotUnavailable
}

func newConflictError(bookings []*domain.Booking) *ConflictError {
	conflicts := make([]Conflict, 0, len(bookings))
	for _, b := range bookings {
		conflicts = append(conflicts, Conflict{BookingID: b.ID, Window: b.Window(), Status: b.Status})
	}
	return &ConflictError{Conflicts: conflicts}
}
