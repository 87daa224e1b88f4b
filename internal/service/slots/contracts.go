package slots

import (
	"context"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// SlotRepository интерфейс репозитория определений слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.SlotDefinition) (*domain.SlotDefinition, error)
	GetByPlayground(ctx context.Context, playgroundID int64, day *domain.DayOfWeek, activeOnly bool) ([]*domain.SlotDefinition, error)
	Deactivate(ctx context.Context, playgroundID, id int64) error
}

// PlaygroundClient интерфейс клиента каталога площадок
type PlaygroundClient interface {
	GetPlayground(ctx context.Context, playgroundID int64) (*domain.Playground, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
