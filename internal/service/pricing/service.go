package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
)

const minutesPerDay = 24 * 60

// Engine считает стоимость бронирования. Не обращается к хранилищу:
// одинаковые входные данные всегда дают одинаковый результат.
// Суммы не округляются, округление выполняет вызывающая сторона (Breakdown.Rounded).
type Engine struct {
	logger Logger
}

// NewEngine создает новый движок расчета цен
func NewEngine(logger Logger) *Engine {
	return &Engine{logger: logger}
}

// Calculate рассчитывает цену окна или слота площадки
func (e *Engine) Calculate(playground *domain.Playground, req Request) (*Breakdown, error) {
	if playground == nil {
		return nil, ErrNoPlayground
	}

	breakdown := &Breakdown{
		Currency: playground.EffectiveCurrency(),
		SlotKind: domain.SlotKindRegular,
	}

	// 1. Базовая стоимость
	if err := e.basePrice(playground, req, breakdown); err != nil {
		return nil, err
	}

	// 2. Дополнительные опции
	breakdown.Amenities, breakdown.AmenityFees = e.amenityFees(playground, req.AmenityIDs)

	// 3. Скидка по купону
	breakdown.Discount = decimal.Zero
	if req.Coupon != nil {
		breakdown.Discount = req.Coupon.CalculateDiscount(breakdown.Subtotal, req.At)
		breakdown.CouponCode = ptr.Ptr(req.Coupon.Code)
		if breakdown.Discount.IsZero() {
			e.logger.Info("Calculate: coupon %s gives no discount on %s", req.Coupon.Code, breakdown.Subtotal)
		}
	}

	// 4. Итог: скидка не делает базовую стоимость отрицательной, опции оплачиваются всегда
	discounted := decimal.Max(decimal.Zero, breakdown.Subtotal.Sub(breakdown.Discount))
	breakdown.FinalAmount = discounted.Add(breakdown.AmenityFees)

	return breakdown, nil
}

func (e *Engine) basePrice(playground *domain.Playground, req Request, b *Breakdown) error {
	slot := req.Slot

	if slot != nil {
		b.StartTime, b.EndTime = slot.StartTime, slot.EndTime
		b.SlotKind = slot.Kind
	} else {
		b.StartTime, b.EndTime = req.StartTime, req.EndTime
	}

	minutes, overnight, err := windowMinutes(b)
	if err != nil {
		return err
	}
	b.Overnight = overnight
	b.DurationHours = domain.MinutesToHours(minutes)

	if slot != nil && slot.Price != nil {
		// Цена слота фиксирована и не зависит от длительности
		b.Subtotal = *slot.Price
		b.PricePerHour = b.Subtotal.Div(b.DurationHours)
		if slot.Kind.IsFlatRate() && slot.Currency != "" {
			b.Currency = slot.Currency
		}
		return nil
	}

	if slot != nil && slot.Kind.IsFlatRate() {
		e.logger.Warn("Calculate: %s slot id=%d has no price, falling back to hourly rate", slot.Kind, slot.ID)
	}

	b.PricePerHour = playground.PricePerHour
	b.Subtotal = playground.PricePerHour.Mul(b.DurationHours)
	return nil
}

// windowMinutes длительность окна. Конец раньше начала означает переход через полночь.
func windowMinutes(b *Breakdown) (int, bool, error) {
	minutes, err := b.StartTime.MinutesUntil(b.EndTime)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if minutes == 0 {
		return 0, false, fmt.Errorf("%w: start equals end (%s)", ErrInvalidWindow, b.StartTime)
	}
	if minutes < 0 {
		return minutes + minutesPerDay, true, nil
	}
	return minutes, false, nil
}

// amenityFees суммирует цены выбранных опций.
// Неизвестные опции пропускаются, некорректная цена считается нулевой.
func (e *Engine) amenityFees(playground *domain.Playground, ids []string) ([]AmenityCharge, decimal.Decimal) {
	total := decimal.Zero
	charges := make([]AmenityCharge, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		amenity, ok := playground.FindAmenity(id)
		if !ok {
			e.logger.Warn("Calculate: amenity %q not offered by playground id=%d, skipped", id, playground.ID)
			continue
		}

		price, err := amenity.ParsePrice()
		if err != nil {
			e.logger.Warn("Calculate: amenity %q of playground id=%d has unusable price %s: %v, using 0",
				id, playground.ID, string(amenity.Price), err)
			price = decimal.Zero
		}

		charges = append(charges, AmenityCharge{ID: amenity.ID, Name: amenity.Name, Price: price})
		total = total.Add(price)
	}

	return charges, total
}
