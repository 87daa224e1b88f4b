package calculate_price

import (
	"errors"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrPlaygroundNotFound возвращается, когда площадка не найдена
	ErrPlaygroundNotFound = domain.NewError(domain.ErrNotFound, "playground not found")

	// ErrSlotNotFound возвращается, когда определение слота не найдено или выключено
	ErrSlotNotFound = domain.NewError(domain.ErrNotFound, "slot definition not found")

	// ErrInvalidCoupon возвращается, когда купон не найден, истек или исчерпан
	ErrInvalidCoupon = domain.NewError(domain.ErrInvalidInput, "discount code is invalid or expired")

	// ErrInvalidWindow возвращается, когда окно не задано или имеет нулевую длину
	ErrInvalidWindow = domain.NewError(domain.ErrInvalidTimeWindow, "start and end time must differ")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrInvalidInput, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_price: internal error")
)
