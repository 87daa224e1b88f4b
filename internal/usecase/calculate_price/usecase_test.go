package calculate_price

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	couponRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/coupon"
	slotRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/slot"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
)

var now = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type fakeSlots struct {
	slots map[int64]*domain.SlotDefinition
}

func (r *fakeSlots) GetByID(_ context.Context, playgroundID, id int64) (*domain.SlotDefinition, error) {
	slot, ok := r.slots[id]
	if !ok || slot.PlaygroundID != playgroundID {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

type fakeCoupons struct {
	coupons map[string]*domain.Coupon
	err     error
}

func (r *fakeCoupons) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.coupons[strings.ToUpper(code)]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return c, nil
}

type fakePlaygrounds struct{}

func (fakePlaygrounds) GetPlayground(_ context.Context, id int64) (*domain.Playground, error) {
	if id != 1 {
		return nil, playgroundClient.ErrPlaygroundNotFound
	}
	return &domain.Playground{
		ID:           1,
		PricePerHour: decimal.NewFromInt(20),
		Currency:     "USD",
		Amenities: []domain.Amenity{
			{ID: "balls", Name: "Balls", Price: json.RawMessage(`"5.50"`)},
			{ID: "lights", Name: "Lights", Price: json.RawMessage(`10`)},
		},
	}, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(coupons *fakeCoupons) *UseCase {
	custom := &domain.SlotDefinition{
		ID: 7, PlaygroundID: 1, DayOfWeek: domain.Monday,
		StartTime: "18:00", EndTime: "20:00",
		Kind: domain.SlotKindCustom, Price: ptr.Ptr(decimal.NewFromInt(75)), Currency: "BDT",
		MaxBookings: 1, Active: true,
	}
	hidden := &domain.SlotDefinition{
		ID: 8, PlaygroundID: 1, DayOfWeek: domain.Monday,
		StartTime: "20:00", EndTime: "21:00", Kind: domain.SlotKindRegular, MaxBookings: 1,
	}

	if coupons == nil {
		coupons = &fakeCoupons{}
	}

	uc := NewUseCase(
		&fakeSlots{slots: map[int64]*domain.SlotDefinition{7: custom, 8: hidden}},
		coupons,
		fakePlaygrounds{},
		pricing.NewEngine(nopLogger{}),
		nopLogger{},
	)
	uc.timeProvider = fixedClock{t: now}
	return uc
}

func validCoupon(code string, discountType domain.DiscountType, value int64) *domain.Coupon {
	return &domain.Coupon{
		ID:            1,
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: decimal.NewFromInt(value),
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
		Active:        true,
	}
}

func TestExecute_HourlyWindowWithAmenities(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		PlaygroundID: 1,
		StartTime:    "10:00",
		EndTime:      "11:30",
		AmenityIDs:   []string{"balls", "lights", "unknown"},
	})
	require.NoError(t, err)

	assert.Equal(t, "30.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "15.50", resp.AmenityFees.StringFixed(2))
	assert.Equal(t, "45.50", resp.FinalAmount.StringFixed(2))
	assert.Equal(t, "1.50", resp.DurationHours.StringFixed(2))
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, []string{"balls", "lights"}, resp.AmenityIDs())
}

func TestExecute_Slot(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, SlotDefinitionID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Equal(t, "75.00", resp.FinalAmount.StringFixed(2))
	assert.Equal(t, "37.50", resp.PricePerHour.StringFixed(2))
	assert.Equal(t, "BDT", resp.Currency)
	assert.Equal(t, domain.SlotKindCustom, resp.SlotKind)

	_, err = uc.Execute(context.Background(), &Request{PlaygroundID: 1, SlotDefinitionID: ptr.Ptr(int64(8))})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = uc.Execute(context.Background(), &Request{PlaygroundID: 1, SlotDefinitionID: ptr.Ptr(int64(99))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_Coupon(t *testing.T) {
	expired := validCoupon("OLD", domain.DiscountFixed, 5)
	expired.ValidUntil = now.Add(-time.Hour)

	coupons := &fakeCoupons{coupons: map[string]*domain.Coupon{
		"SAVE10": validCoupon("SAVE10", domain.DiscountPercentage, 10),
		"BIG":    validCoupon("BIG", domain.DiscountFixed, 1000),
		"OLD":    expired,
	}}
	uc := newUseCase(coupons)

	tests := []struct {
		name     string
		code     string
		discount string
		final    string
		err      error
	}{
		{name: "percentage", code: "save10", discount: "4.00", final: "41.50"},
		{name: "fixed capped at subtotal, amenities still charged", code: "BIG", discount: "40.00", final: "5.50"},
		{name: "expired", code: "OLD", err: ErrInvalidCoupon},
		{name: "unknown", code: "NOPE", err: ErrInvalidCoupon},
		{name: "blank code is ignored", code: "  ", discount: "0.00", final: "45.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{
				PlaygroundID: 1,
				StartTime:    "10:00",
				EndTime:      "12:00",
				AmenityIDs:   []string{"balls"},
				DiscountCode: ptr.Ptr(tt.code),
			})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.discount, resp.Discount.StringFixed(2))
			assert.Equal(t, tt.final, resp.FinalAmount.StringFixed(2))
		})
	}
}

func TestExecute_CouponLookupFailure(t *testing.T) {
	uc := newUseCase(&fakeCoupons{err: errors.New("db down")})

	_, err := uc.Execute(context.Background(), &Request{
		PlaygroundID: 1, StartTime: "10:00", EndTime: "11:00", DiscountCode: ptr.Ptr("SAVE10"),
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Overnight(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, StartTime: "23:00", EndTime: "01:00"})
	require.NoError(t, err)
	assert.True(t, resp.Overnight)
	assert.Equal(t, "40.00", resp.FinalAmount.StringFixed(2))
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(nil)

	tests := []struct {
		name string
		req  *Request
		err  error
	}{
		{name: "no playground", req: &Request{StartTime: "10:00", EndTime: "11:00"}, err: domain.ErrInvalidInput},
		{name: "no window", req: &Request{PlaygroundID: 1}, err: domain.ErrInvalidInput},
		{name: "malformed start", req: &Request{PlaygroundID: 1, StartTime: "25:00", EndTime: "11:00"}, err: domain.ErrInvalidTimeWindow},
		{name: "zero length", req: &Request{PlaygroundID: 1, StartTime: "10:00", EndTime: "10:00"}, err: domain.ErrInvalidTimeWindow},
		{name: "unknown playground", req: &Request{PlaygroundID: 2, StartTime: "10:00", EndTime: "11:00"}, err: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
