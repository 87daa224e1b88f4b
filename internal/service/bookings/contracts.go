package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Transition(ctx context.Context, id uuid.UUID, change bookingRepo.StatusChange) error
}

// PlaygroundClient интерфейс клиента каталога площадок
type PlaygroundClient interface {
	GetPlayground(ctx context.Context, playgroundID int64) (*domain.Playground, error)
}

// Notifier публикует события бронирований после фиксации изменений
type Notifier interface {
	Notify(ctx context.Context, event events.BookingEvent)
}

// MetricsRecorder бизнес-метрики бронирований
type MetricsRecorder interface {
	BookingTransition(to string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
