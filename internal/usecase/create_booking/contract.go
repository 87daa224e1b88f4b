package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория определений слотов
type SlotRepository interface {
	GetByID(ctx context.Context, playgroundID, id int64) (*domain.SlotDefinition, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	IncrementUsage(ctx context.Context, id int64) error
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
	BookingCreated(status string)
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
