package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	refundFull = decimal.NewFromInt(1)
	refundHalf = decimal.NewFromFloat(0.5)
)

// RefundRate returns the share of the final amount refunded when a booking
// starting at start is cancelled at now: 100% with at least 48h notice,
// 50% with at least 24h, nothing otherwise.
func RefundRate(now, start time.Time) decimal.Decimal {
	remaining := start.Sub(now)
	switch {
	case remaining >= FullRefundNotice:
		return refundFull
	case remaining >= CancellationNotice:
		return refundHalf
	default:
		return decimal.Zero
	}
}

// CalculateRefundAmount is a pure function of the amount paid and the time left
// before start. The result is rounded to cents.
func CalculateRefundAmount(finalAmount decimal.Decimal, now, start time.Time) decimal.Decimal {
	if finalAmount.IsNegative() {
		return decimal.Zero
	}
	return finalAmount.Mul(RefundRate(now, start)).Round(MoneyScale)
}

// RefundStatusFor returns pending when something is owed, not_applicable otherwise
func RefundStatusFor(amount decimal.Decimal) RefundStatus {
	if amount.IsPositive() {
		return RefundPending
	}
	return RefundNotApplicable
}
