package get_available_slots

import (
	"errors"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrPlaygroundNotFound возвращается, когда площадка не найдена
	ErrPlaygroundNotFound = domain.NewError(domain.ErrNotFound, "playground not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrInvalidInput, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
