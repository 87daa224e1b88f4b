package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
)

func TestCoupon_CalculateDiscount(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	base := Coupon{
		Code:          "SUMMER",
		DiscountType:  DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		MinimumAmount: decimal.NewFromInt(50),
		ValidFrom:     now.AddDate(0, -1, 0),
		ValidUntil:    now.AddDate(0, 1, 0),
		Active:        true,
	}

	tests := []struct {
		name   string
		mutate func(c *Coupon)
		amount string
		want   string
	}{
		{name: "percentage", amount: "200", want: "20"},
		{name: "below minimum", amount: "40", want: "0"},
		{name: "percentage capped at amount", mutate: func(c *Coupon) { c.DiscountValue = decimal.NewFromInt(150) }, amount: "80", want: "80"},
		{name: "fixed", mutate: func(c *Coupon) { c.DiscountType = DiscountFixed; c.DiscountValue = decimal.NewFromInt(30) }, amount: "100", want: "30"},
		{name: "fixed capped at amount", mutate: func(c *Coupon) { c.DiscountType = DiscountFixed; c.DiscountValue = decimal.NewFromInt(300) }, amount: "100", want: "100"},
		{name: "inactive", mutate: func(c *Coupon) { c.Active = false }, amount: "200", want: "0"},
		{name: "expired", mutate: func(c *Coupon) { c.ValidUntil = now.Add(-time.Minute) }, amount: "200", want: "0"},
		{name: "not started", mutate: func(c *Coupon) { c.ValidFrom = now.Add(time.Minute) }, amount: "200", want: "0"},
		{name: "exhausted", mutate: func(c *Coupon) { c.MaxUses = ptr.Ptr(5); c.UsedCount = 5 }, amount: "200", want: "0"},
		{name: "unknown type", mutate: func(c *Coupon) { c.DiscountType = "bogo" }, amount: "200", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			got := c.CalculateDiscount(decimal.RequireFromString(tt.amount), now)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
