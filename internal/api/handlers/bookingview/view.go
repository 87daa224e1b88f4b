package bookingview

import (
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
)

// Booking бронирование с суммами, отформатированными для показа
type Booking struct {
	*models.BookingResponse
	DisplayFinalAmount  string `json:"displayFinalAmount"`
	DisplayRefundAmount string `json:"displayRefundAmount"`
}

// BookingList список бронирований для показа
type BookingList struct {
	Bookings []Booking `json:"bookings"`
}

// FromBooking добавляет строки с символом валюты
func FromBooking(b *models.BookingResponse) *Booking {
	if b == nil {
		return nil
	}
	return &Booking{
		BookingResponse:     b,
		DisplayFinalAmount:  display(b.FinalAmount, b.Currency),
		DisplayRefundAmount: display(b.RefundAmount, b.Currency),
	}
}

// FromBookingList конвертирует список
func FromBookingList(list *models.BookingListResponse) *BookingList {
	result := &BookingList{Bookings: make([]Booking, 0, len(list.Bookings))}
	for i := range list.Bookings {
		result.Bookings = append(result.Bookings, *FromBooking(&list.Bookings[i]))
	}
	return result
}

// суммы в BookingResponse уже округлены и отформатированы
func display(amount, currency string) string {
	d, err := handlers.ParseAmount(amount)
	if err != nil {
		return amount
	}
	return handlers.FormatPrice(d, currency)
}
