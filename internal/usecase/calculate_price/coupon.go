package calculate_price

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	couponRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/coupon"
)

// resolveCoupon находит купон по коду и проверяет, что он действует в момент now
func resolveCoupon(ctx context.Context, repo CouponRepository, code string, now time.Time) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)

	coupon, err := repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCoupon, code)
		}
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	if !coupon.IsValid(now) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCoupon, code)
	}

	return coupon, nil
}
