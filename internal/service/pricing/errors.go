package pricing

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrInvalidWindow возвращается при некорректном окне (пустом или с неверным форматом времени)
	ErrInvalidWindow = fmt.Errorf("pricing: %w", domain.ErrInvalidTimeWindow)

	// ErrNoPlayground возвращается, когда площадка не передана
	ErrNoPlayground = errors.New("pricing: playground is required")
)
