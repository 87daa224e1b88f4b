package calculate_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
)

// SlotRepository интерфейс репозитория определений слотов
type SlotRepository interface {
	GetByID(ctx context.Context, playgroundID, id int64) (*domain.SlotDefinition, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// PlaygroundClient интерфейс клиента каталога площадок
type PlaygroundClient interface {
	GetPlayground(ctx context.Context, playgroundID int64) (*domain.Playground, error)
}

// PricingEngine интерфейс расчета цены
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
