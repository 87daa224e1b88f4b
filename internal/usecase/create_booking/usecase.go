package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/coupon"
	slotRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/slot"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/conflicts"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	slotRepo         SlotRepository
	couponRepo       CouponRepository
	conflicts        ConflictChecker
	playgroundClient PlaygroundClient
	pricingEngine    PricingEngine
	txManager        TransactionManager
	notifier         Notifier
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	couponRepo CouponRepository,
	conflicts ConflictChecker,
	playgroundClient PlaygroundClient,
	pricingEngine PricingEngine,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		slotRepo:         slotRepo,
		couponRepo:       couponRepo,
		conflicts:        conflicts,
		playgroundClient: playgroundClient,
		pricingEngine:    pricingEngine,
		txManager:        txManager,
		notifier:         notifier,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому из двух конкурентных запросов на одно окно успешен только один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: customer=%d, playground=%d, date=%s, window=%s-%s, slot=%v",
		req.Actor.UserID, req.PlaygroundID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.SlotDefinitionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе площадок
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем площадку
	playground, err := uc.playgroundClient.GetPlayground(ctx, req.PlaygroundID)
	if err != nil {
		if errors.Is(err, playgroundClient.ErrPlaygroundNotFound) {
			uc.logger.Warn("CreateBooking: playground id=%d not found", req.PlaygroundID)
			return nil, ErrPlaygroundNotFound
		}
		uc.logger.Error("CreateBooking: failed to get playground id=%d: %v", req.PlaygroundID, err)
		return nil, fmt.Errorf("%w: failed to get playground: %v", ErrInternal, err)
	}

	// 4. Слот определяет окно, если бронируется кастомный слот или абонемент
	var slot *domain.SlotDefinition
	if req.SlotDefinitionID != nil {
		slot, err = uc.getSlot(ctx, req)
		if err != nil {
			return nil, err
		}
		req.StartTime, req.EndTime = slot.StartTime, slot.EndTime
		if err := validateWindow(req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("CreateBooking: slot id=%d has invalid window: %v", slot.ID, err)
			return nil, err
		}
	}
	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}

	// 5. Проверки по времени, рабочим часам и вместимости
	if err := validateTiming(playground, req.Date, req.StartTime, now, uc.location); err != nil {
		uc.logger.Warn("CreateBooking: timing validation failed: %v", err)
		return nil, err
	}
	if err := validateOperatingHours(playground, req.Date, window); err != nil {
		uc.logger.Warn("CreateBooking: operating hours validation failed: %v", err)
		return nil, err
	}
	if err := validateCapacity(playground, req.NumberOfPlayers); err != nil {
		uc.logger.Warn("CreateBooking: capacity validation failed: %v", err)
		return nil, err
	}

	// 6. Купон: указанный, но недействительный код отклоняется
	var coupon *domain.Coupon
	if req.DiscountCode != nil {
		coupon, err = uc.resolveCoupon(ctx, *req.DiscountCode, now)
		if err != nil {
			return nil, err
		}
	}

	// 7. Расчет цены; в бронировании фиксируются округленные суммы
	breakdown, err := uc.pricingEngine.Calculate(playground, pricing.Request{
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Slot:       slot,
		AmenityIDs: req.AmenityIDs,
		Coupon:     coupon,
		At:         now,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}
	price := breakdown.Rounded()

	booking := uc.buildBooking(req, playground, slot, price, now)

	// 8. Проверка пересечений и вставка в сериализуемой транзакции
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Занимающие бронирования блокируются до конца транзакции (FOR UPDATE)
		if err := uc.conflicts.Check(txCtx, req.PlaygroundID, req.Date, window, nil); err != nil {
			return err
		}

		// 8.2. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		// 8.3. Учитываем использование купона в той же транзакции
		if coupon != nil && price.Discount.IsPositive() {
			if err := uc.couponRepo.IncrementUsage(txCtx, coupon.ID); err != nil {
				if errors.Is(err, couponRepo.ErrCouponExhausted) {
					return fmt.Errorf("%w: %q usage limit reached", ErrInvalidCoupon, coupon.Code)
				}
				return &couponUsageError{code: coupon.Code, err: err}
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(req, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%s, status=%s, final=%s %s",
		result.ID, result.Status, result.FinalAmount.StringFixed(domain.MoneyScale), result.Currency)

	// 9. После фиксации: метрика и событие
	uc.metrics.BookingCreated(string(result.Status))
	uc.notifier.Notify(ctx, events.NewBookingEvent(events.BookingCreated, result, now))

	return models.FromDomainBooking(result), nil
}

// couponUsageError ошибка учета использования купона внутри транзакции
type couponUsageError struct {
	code string
	err  error
}

func (e *couponUsageError) Error() string {
	return fmt.Sprintf("coupon %q usage: %v", e.code, e.err)
}

func (e *couponUsageError) Unwrap() error {
	return e.err
}

// mapTxError переводит ошибку транзакции в ошибку usecase.
// Проигрыш в гонке за окно (сериализация, уникальность) означает занятый слот,
// проигрыш в гонке за строку купона - конкурентное погашение купона.
func (uc *UseCase) mapTxError(req *Request, err error) error {
	var conflictErr *conflicts.ConflictError
	var couponErr *couponUsageError

	switch {
	case errors.As(err, &couponErr) && txmanager.IsSerializationError(err):
		uc.logger.Warn("CreateBooking: lost race for coupon %q: %v", couponErr.code, err)
		return ErrCouponContention
	case errors.As(err, &conflictErr):
		uc.metrics.BookingConflict("create")
		uc.logger.Warn("CreateBooking: playground=%d, date=%s, window=%s-%s %v",
			req.PlaygroundID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, conflictErr)
		return fmt.Errorf("%w: %w", ErrSlotUnavailable, conflictErr)
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable), txmanager.IsSerializationError(err):
		uc.metrics.BookingConflict("create")
		uc.logger.Warn("CreateBooking: lost race for playground=%d, date=%s, window=%s-%s: %v",
			req.PlaygroundID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, err)
		return ErrSlotUnavailable
	case errors.Is(err, ErrInvalidCoupon):
		uc.logger.Warn("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

func (uc *UseCase) getSlot(ctx context.Context, req *Request) (*domain.SlotDefinition, error) {
	slot, err := uc.slotRepo.GetByID(ctx, req.PlaygroundID, *req.SlotDefinitionID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%d not found for playground=%d", *req.SlotDefinitionID, req.PlaygroundID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", *req.SlotDefinitionID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if !slot.Active {
		uc.logger.Warn("CreateBooking: slot id=%d is inactive", slot.ID)
		return nil, ErrSlotNotFound
	}

	if slot.DayOfWeek != domain.DayOfWeekFromDate(req.Date) {
		uc.logger.Warn("CreateBooking: slot id=%d is offered on %s, requested %s",
			slot.ID, slot.DayOfWeek, domain.DayOfWeekFromDate(req.Date))
		return nil, fmt.Errorf("%w: slot is offered on %s", ErrSlotDayMismatch, slot.DayOfWeek)
	}

	return slot, nil
}

// buildBooking собирает новое бронирование с зафиксированной ценой
func (uc *UseCase) buildBooking(req *Request, playground *domain.Playground, slot *domain.SlotDefinition, price pricing.Breakdown, now time.Time) *domain.Booking {
	status := domain.InitialStatus(playground.AutoApproval, req.PaymentMethod, req.PaymentReceiptRef)

	booking := &domain.Booking{
		PlaygroundID:      req.PlaygroundID,
		CustomerID:        req.Actor.UserID,
		BookingDate:       req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DurationHours:     price.DurationHours,
		Status:            status,
		PaymentStatus:     domain.PaymentStatusPending,
		PaymentMethod:     req.PaymentMethod,
		PaymentReceiptRef: req.PaymentReceiptRef,
		PricePerHour:      price.PricePerHour,
		TotalAmount:       price.Subtotal,
		DiscountAmount:    price.Discount,
		AmenityFees:       price.AmenityFees,
		FinalAmount:       price.FinalAmount,
		Currency:          price.Currency,
		RefundStatus:      domain.RefundNotApplicable,
		SelectedAmenities: price.AmenityIDs(),
		NumberOfPlayers:   req.NumberOfPlayers,
		SpecialRequests:   req.SpecialRequests,
	}

	if price.Discount.IsPositive() {
		booking.CouponCode = price.CouponCode
	}

	if slot != nil {
		booking.SlotDefinitionID = ptr.Ptr(slot.ID)
		booking.SlotKind = ptr.Ptr(slot.Kind)
	}

	if status == domain.StatusConfirmed {
		booking.ConfirmedAt = ptr.Ptr(now)
	}

	return booking
}
