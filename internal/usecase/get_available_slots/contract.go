package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetOccupyingByDate получает pending/confirmed бронирования площадки на дату
	GetOccupyingByDate(ctx context.Context, playgroundID int64, date time.Time) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория определений слотов
type SlotRepository interface {
	GetByPlayground(ctx context.Context, playgroundID int64, day *domain.DayOfWeek, activeOnly bool) ([]*domain.SlotDefinition, error)
}

// PlaygroundClient интерфейс клиента каталога площадок
type PlaygroundClient interface {
	GetPlayground(ctx context.Context, playgroundID int64) (*domain.Playground, error)
}

// PricingEngine интерфейс расчета цены слота
type PricingEngine interface {
	Calculate(playground *domain.Playground, req pricing.Request) (*pricing.Breakdown, error)
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
