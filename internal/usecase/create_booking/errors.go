package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrPlaygroundNotFound возвращается, когда площадка не найдена
	ErrPlaygroundNotFound = domain.NewError(domain.ErrNotFound, "playground not found")

	// ErrSlotNotFound возвращается, когда определение слота не найдено или выключено
	ErrSlotNotFound = domain.NewError(domain.ErrNotFound, "slot definition not found")

	// ErrSlotDayMismatch возвращается, когда слот определен для другого дня недели
	ErrSlotDayMismatch = domain.NewError(domain.ErrInvalidInput, "slot is not offered on the requested date")

	// ErrSlotUnavailable возвращается, когда окно пересекает существующее бронирование
	ErrSlotUnavailable = domain.NewError(domain.ErrSlotUnavailable, "requested time overlaps an existing booking")

	// ErrInvalidWindow возвращается, когда начало не раньше окончания
	ErrInvalidWindow = domain.NewError(domain.ErrInvalidTimeWindow, "start time must be before end time on the same date")

	// ErrBookingInPast возвращается, когда начало бронирования уже наступило
	ErrBookingInPast = domain.NewError(domain.ErrTooLate, "cannot book a time in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает advance_booking_days площадки
	ErrDateTooFarInFuture = domain.NewError(domain.ErrTooFar, "date is beyond the advance booking window")

	// ErrPlaygroundClosed возвращается, когда площадка не работает в этот день
	ErrPlaygroundClosed = domain.NewError(domain.ErrPolicyViolation, "playground is closed on this date")

	// ErrOutsideOperatingHours возвращается, когда окно выходит за рабочие часы
	ErrOutsideOperatingHours = domain.NewError(domain.ErrPolicyViolation, "requested time is outside operating hours")

	// ErrCapacityExceeded возвращается, когда игроков больше вместимости площадки
	ErrCapacityExceeded = domain.NewError(domain.ErrInvalidInput, "number of players exceeds playground capacity")

	// ErrInvalidCoupon возвращается, когда купон не найден, истек или исчерпан
	ErrInvalidCoupon = domain.NewError(domain.ErrInvalidInput, "discount code is invalid or expired")

	// ErrCouponContention возвращается, когда купон одновременно погашается другим бронированием
	ErrCouponContention = domain.NewError(domain.ErrPolicyViolation, "discount code is being redeemed concurrently, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrInvalidInput, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
