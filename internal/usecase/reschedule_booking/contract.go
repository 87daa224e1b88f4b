package reschedule_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Reschedule(ctx context.Context, id uuid.UUID, change bookingRepo.RescheduleChange, at time.Time) error
}

// ConflictChecker проверка пересечения окна с занимающими бронированиями
type ConflictChecker interface {
	Check(ctx context.Context, playgroundID int64, date time.Time, window domain.TimeWindow, exclude *uuid.UUID) error
}

// PlaygroundClient интерфейс клиента каталога площадок
type PlaygroundClient interface {
	GetPlayground(ctx context.Context, playgroundID int64) (*domain.Playground, error)
}

// PricingEngine интерфейс расчета цены
type PricingEngine interface {
	Calculate(playground *domain.Playground, req pricing.Request) (*pricing.Breakdown, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикует события бронирований после фиксации изменений
type Notifier interface {
	Notify(ctx context.Context, event events.BookingEvent)
}

// MetricsRecorder бизнес-метрики бронирований
type MetricsRecorder interface {
	BookingConflict(operation string)
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
