package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType how a coupon reduces the price
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon discount code resolved by its code
type Coupon struct {
	ID            int64
	Code          string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MinimumAmount decimal.Decimal
	MaxUses       *int // nil = unlimited
	UsedCount     int
	ValidFrom     time.Time
	ValidUntil    time.Time
	Active        bool
	CreatedAt     time.Time
}

// IsValid returns true if the coupon is active, within its validity period and not exhausted
func (c *Coupon) IsValid(now time.Time) bool {
	if !c.Active {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return false
	}
	return true
}

var hundred = decimal.NewFromInt(100)

// CalculateDiscount returns the discount for amount. Zero when the coupon is not
// valid or amount is below the minimum; never more than amount.
func (c *Coupon) CalculateDiscount(amount decimal.Decimal, now time.Time) decimal.Decimal {
	if !c.IsValid(now) || amount.LessThan(c.MinimumAmount) || !amount.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = amount.Mul(c.DiscountValue).Div(hundred)
	case DiscountFixed:
		discount = c.DiscountValue
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(discount, amount)
}
