package slots

import (
	"errors"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда определение слота не найдено
	ErrSlotNotFound = domain.NewError(domain.ErrNotFound, "slot definition not found")

	// ErrPlaygroundNotFound возвращается, когда площадка не найдена в каталоге
	ErrPlaygroundNotFound = domain.NewError(domain.ErrNotFound, "playground not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет площадкой
	ErrAccessDenied = domain.NewError(domain.ErrPermissionDenied, "access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrInvalidInput, "invalid slot definition")

	// ErrInvalidWindow возвращается, когда начало слота не раньше конца
	ErrInvalidWindow = domain.NewError(domain.ErrInvalidTimeWindow, "slot start must be before end")

	// ErrOutsideOperatingHours возвращается, когда слот выходит за рабочие часы площадки
	ErrOutsideOperatingHours = domain.NewError(domain.ErrInvalidTimeWindow, "slot is outside operating hours")

	// ErrSlotAlreadyExists возвращается при попытке создать слот с тем же днем и окном
	ErrSlotAlreadyExists = domain.NewError(domain.ErrInvalidInput, "slot with the same day and window already exists")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
