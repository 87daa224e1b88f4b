package calculate_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/slot"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
)

// UseCase use case для расчета цены бронирования без его создания
type UseCase struct {
	slotRepo         SlotRepository
	couponRepo       CouponRepository
	playgroundClient PlaygroundClient
	pricingEngine    PricingEngine
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	couponRepo CouponRepository,
	playgroundClient PlaygroundClient,
	pricingEngine PricingEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:         slotRepo,
		couponRepo:       couponRepo,
		playgroundClient: playgroundClient,
		pricingEngine:    pricingEngine,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case расчета цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CalculatePrice: playground=%d, window=%s-%s, slot=%v, amenities=%d",
		req.PlaygroundID, req.StartTime, req.EndTime, req.SlotDefinitionID, len(req.AmenityIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculatePrice: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем площадку
	playground, err := uc.playgroundClient.GetPlayground(ctx, req.PlaygroundID)
	if err != nil {
		if errors.Is(err, playgroundClient.ErrPlaygroundNotFound) {
			uc.logger.Warn("CalculatePrice: playground id=%d not found", req.PlaygroundID)
			return nil, ErrPlaygroundNotFound
		}
		uc.logger.Error("CalculatePrice: failed to get playground id=%d: %v", req.PlaygroundID, err)
		return nil, fmt.Errorf("%w: failed to get playground: %v", ErrInternal, err)
	}

	pricingReq := pricing.Request{
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		AmenityIDs: req.AmenityIDs,
		At:         now,
	}

	// 3. Определение слота, если цена считается по слоту
	if req.SlotDefinitionID != nil {
		slot, err := uc.getSlot(ctx, req.PlaygroundID, *req.SlotDefinitionID)
		if err != nil {
			return nil, err
		}
		pricingReq.Slot = slot
	}

	// 4. Купон: указанный, но недействительный код отклоняется
	if req.DiscountCode != nil {
		coupon, err := resolveCoupon(ctx, uc.couponRepo, *req.DiscountCode, now)
		if err != nil {
			if errors.Is(err, ErrInvalidCoupon) {
				uc.logger.Warn("CalculatePrice: discount code %q rejected", *req.DiscountCode)
			} else {
				uc.logger.Error("CalculatePrice: failed to resolve coupon: %v", err)
			}
			return nil, err
		}
		pricingReq.Coupon = coupon
	}

	// 5. Расчет
	breakdown, err := uc.pricingEngine.Calculate(playground, pricingReq)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeWindow) {
			uc.logger.Warn("CalculatePrice: invalid window: %v", err)
			return nil, err
		}
		uc.logger.Error("CalculatePrice: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	rounded := breakdown.Rounded()
	uc.logger.Info("CalculatePrice: playground=%d, final=%s %s", req.PlaygroundID, rounded.FinalAmount.StringFixed(domain.MoneyScale), rounded.Currency)

	return &Response{
		PlaygroundID:     req.PlaygroundID,
		SlotDefinitionID: req.SlotDefinitionID,
		Breakdown:        rounded,
	}, nil
}

func (uc *UseCase) getSlot(ctx context.Context, playgroundID, slotID int64) (*domain.SlotDefinition, error) {
	slot, err := uc.slotRepo.GetByID(ctx, playgroundID, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CalculatePrice: slot id=%d not found for playground=%d", slotID, playgroundID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CalculatePrice: failed to get slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if !slot.Active {
		uc.logger.Warn("CalculatePrice: slot id=%d is inactive", slotID)
		return nil, ErrSlotNotFound
	}

	return slot, nil
}
