package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Request входные данные расчета цены
type Request struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	// Slot определение слота, для которого считается цена (опционально).
	// Если задано, окно берется из слота.
	Slot *domain.SlotDefinition

	AmenityIDs []string

	// Coupon уже найденный купон (опционально)
	Coupon *domain.Coupon
	// At момент, на который проверяется действие купона
	At time.Time
}

// AmenityCharge стоимость одной выбранной опции
type AmenityCharge struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Breakdown результат расчета цены.
// FinalAmount = max(0, Subtotal - Discount) + AmenityFees
type Breakdown struct {
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours decimal.Decimal
	PricePerHour  decimal.Decimal
	Subtotal      decimal.Decimal
	AmenityFees   decimal.Decimal
	Discount      decimal.Decimal
	FinalAmount   decimal.Decimal
	Currency      string
	SlotKind      domain.SlotKind
	Overnight     bool
	Amenities     []AmenityCharge
	CouponCode    *string
}

// AmenityIDs ID опций, вошедших в расчет
func (b *Breakdown) AmenityIDs() []string {
	ids := make([]string, 0, len(b.Amenities))
	for _, a := range b.Amenities {
		ids = append(ids, a.ID)
	}
	return ids
}

// Rounded возвращает копию с суммами, округленными до копеек.
// Итог пересчитывается из округленных слагаемых, поэтому сходится до копейки.
func (b Breakdown) Rounded() Breakdown {
	b.PricePerHour = b.PricePerHour.Round(domain.MoneyScale)
	b.Subtotal = b.Subtotal.Round(domain.MoneyScale)
	b.AmenityFees = b.AmenityFees.Round(domain.MoneyScale)
	b.Discount = b.Discount.Round(domain.MoneyScale)
	b.FinalAmount = decimal.Max(decimal.Zero, b.Subtotal.Sub(b.Discount)).Add(b.AmenityFees)
	b.DurationHours = b.DurationHours.Round(domain.MoneyScale)
	return b
}
