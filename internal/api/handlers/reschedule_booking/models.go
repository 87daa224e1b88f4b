package reschedule_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model. Без bookingDate дата не меняется.
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Reprice     bool   `json:"reprice,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID uuid.UUID, actor domain.Actor) (*rescheduleBooking.Request, error) {
	req := &rescheduleBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Reprice:   r.Reprice,
	}

	date, err := handlers.ParseOptionalDate(r.BookingDate)
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.Date = *date
	}

	if req.StartTime, err = handlers.ParseTime(r.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = handlers.ParseTime(r.EndTime); err != nil {
		return nil, err
	}

	return req, nil
}
