package reschedule_booking

import (
	"errors"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.ErrNotFound, "booking not found")

	// ErrPlaygroundNotFound возвращается, когда площадка не найдена
	ErrPlaygroundNotFound = domain.NewError(domain.ErrNotFound, "playground not found")

	// ErrAccessDenied возвращается, когда пользователь не клиент, не владелец площадки и не администратор
	ErrAccessDenied = domain.NewError(domain.ErrPermissionDenied, "access denied to this booking")

	// ErrNotReschedulable возвращается для бронирований в статусах, отличных от pending и confirmed
	ErrNotReschedulable = domain.NewError(domain.ErrIllegalTransition, "only pending or confirmed bookings can be rescheduled")

	// ErrRescheduleTooLate возвращается, когда до начала бронирования осталось меньше 2 часов
	ErrRescheduleTooLate = domain.NewError(domain.ErrTooLate, "rescheduling requires 2+ hours notice before the current start")

	// ErrBookingInPast возвращается, когда новое начало уже наступило
	ErrBookingInPast = domain.NewError(domain.ErrTooLate, "cannot move a booking to a time in the past")

	// ErrDateTooFarInFuture возвращается, когда новая дата превышает advance_booking_days площадки
	ErrDateTooFarInFuture = domain.NewError(domain.ErrTooFar, "date is beyond the advance booking window")

	// ErrPlaygroundClosed возвращается, когда площадка не работает в новый день
	ErrPlaygroundClosed = domain.NewError(domain.ErrPolicyViolation, "playground is closed on this date")

	// ErrOutsideOperatingHours возвращается, когда новое окно выходит за рабочие часы
	ErrOutsideOperatingHours = domain.NewError(domain.ErrPolicyViolation, "requested time is outside operating hours")

	// ErrSlotUnavailable возвращается, когда новое окно пересекает другое бронирование
	ErrSlotUnavailable = domain.NewError(domain.ErrSlotUnavailable, "requested time overlaps an existing booking")

	// ErrConcurrentUpdate возвращается, когда бронирование изменилось между чтением и записью
	ErrConcurrentUpdate = domain.NewError(domain.ErrPolicyViolation, "booking was modified concurrently, retry")

	// ErrInvalidWindow возвращается, когда начало не раньше окончания
	ErrInvalidWindow = domain.NewError(domain.ErrInvalidTimeWindow, "start time must be before end time on the same date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrInvalidInput, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
