package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// StatusChange изменение статуса бронирования (compare-and-set по From)
type StatusChange struct {
	From domain.BookingStatus
	To   domain.BookingStatus
	At   time.Time

	CancellationReason *string
	RefundAmount       *decimal.Decimal
	RefundStatus       *domain.RefundStatus
}

// RescheduleChange перенос бронирования на новое окно
type RescheduleChange struct {
	// ExpectedStatus статус, в котором бронирование было прочитано
	ExpectedStatus domain.BookingStatus
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	DurationHours  decimal.Decimal

	// DetachSlot снимает привязку к определению слота: новое окно с ним не совпадает
	DetachSlot bool

	// Price новый расчет цены; nil - цена сохраняется
	Price *PriceSnapshot
}

// PriceSnapshot зафиксированные суммы бронирования
type PriceSnapshot struct {
	PricePerHour   decimal.Decimal
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	AmenityFees    decimal.Decimal
	FinalAmount    decimal.Decimal
}
