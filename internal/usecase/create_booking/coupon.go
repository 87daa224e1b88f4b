package create_booking

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
func (uc *UseCase) resolveCoupon(ctx context.Context, code string, now time.Time) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)

	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Warn("CreateBooking: discount code %q not found", code)
			return nil, fmt.Errorf("%w: %q", ErrInvalidCoupon, code)
		}
		uc.logger.Error("CreateBooking: failed to get coupon %q: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	if !coupon.IsValid(now) {
		uc.logger.Warn("CreateBooking: discount code %q is not valid at %s", code, now.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: %q", ErrInvalidCoupon, code)
	}

	return coupon, nil
}
