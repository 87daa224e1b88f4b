package get_playground_bookings

import (
	"context"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetPlaygroundBookings(ctx context.Context, req *models.GetPlaygroundBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
