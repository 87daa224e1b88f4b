package bookings

import (
	"errors"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.ErrNotFound, "booking not found")

	// ErrPlaygroundNotFound возвращается, когда площадка не найдена в каталоге
	ErrPlaygroundNotFound = domain.NewError(domain.ErrNotFound, "playground not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = domain.NewError(domain.ErrPermissionDenied, "access denied")

	// ErrCancellationWindowClosed возвращается, когда до начала осталось меньше 24 часов
	ErrCancellationWindowClosed = domain.NewError(domain.ErrTooLate,
		"cancellation requires at least 24 hours notice before start")

	// ErrInvalidTransition возвращается, когда статус не допускает перехода
	ErrInvalidTransition = domain.NewError(domain.ErrIllegalTransition, "booking status does not allow this change")

	// ErrBookingNotEnded возвращается при попытке завершить бронирование до окончания окна
	ErrBookingNotEnded = domain.NewError(domain.ErrPolicyViolation, "booking window has not ended yet")

	// ErrConcurrentUpdate возвращается, когда бронирование изменилось между чтением и записью
	ErrConcurrentUpdate = domain.NewError(domain.ErrPolicyViolation, "booking was modified concurrently, retry the request")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = domain.NewError(domain.ErrInvalidInput, "invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrInvalidInput, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
