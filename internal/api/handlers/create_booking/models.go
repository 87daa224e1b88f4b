package create_booking

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Окно задается startTime/endTime либо slotDefinitionId.
type CreateBookingRequest struct {
	PlaygroundID      int64    `json:"playgroundId"`
	BookingDate       string   `json:"bookingDate"` // "2025-10-15"
	StartTime         string   `json:"startTime"`   // "10:00"
	EndTime           string   `json:"endTime"`     // "11:30"
	SlotDefinitionID  *int64   `json:"slotDefinitionId,omitempty"`
	PaymentMethod     string   `json:"paymentMethod,omitempty"`
	PaymentReceiptRef *string  `json:"paymentReceiptRef,omitempty"`
	AmenityIDs        []string `json:"amenityIds,omitempty"`
	DiscountCode      *string  `json:"discountCode,omitempty"`
	NumberOfPlayers   int      `json:"numberOfPlayers,omitempty"`
	SpecialRequests   *string  `json:"specialRequests,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	if r.BookingDate == "" {
		return nil, errors.New("bookingDate is required")
	}
	date, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := handlers.ParseTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Actor:             actor,
		PlaygroundID:      r.PlaygroundID,
		Date:              date,
		StartTime:         startTime,
		EndTime:           endTime,
		SlotDefinitionID:  r.SlotDefinitionID,
		PaymentMethod:     domain.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod))),
		PaymentReceiptRef: r.PaymentReceiptRef,
		AmenityIDs:        r.AmenityIDs,
		DiscountCode:      r.DiscountCode,
		NumberOfPlayers:   r.NumberOfPlayers,
		SpecialRequests:   r.SpecialRequests,
	}, nil
}
