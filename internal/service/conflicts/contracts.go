package conflicts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindOverlapping(ctx context.Context, playgroundID int64, date time.Time, window domain.TimeWindow, exclude *uuid.UUID) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
