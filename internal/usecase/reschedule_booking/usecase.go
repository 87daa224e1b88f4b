package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/booking"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/conflicts"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/txmanager"
)

// UseCase use case для переноса бронирования на другое окно
type UseCase struct {
	bookingRepo      BookingRepository
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

// Execute выполняет use case переноса бронирования.
// При любой ошибке бронирование остается без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, user=%d, window=%s-%s",
		req.BookingID, req.Actor.UserID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Получаем площадку (нужна и для проверки прав владельца)
	playground, err := uc.playgroundClient.GetPlayground(ctx, booking.PlaygroundID)
	if err != nil {
		if errors.Is(err, playgroundClient.ErrPlaygroundNotFound) {
			uc.logger.Warn("RescheduleBooking: playground id=%d not found", booking.PlaygroundID)
			return nil, ErrPlaygroundNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get playground id=%d: %v", booking.PlaygroundID, err)
		return nil, fmt.Errorf("%w: failed to get playground: %v", ErrInternal, err)
	}

	// 4. Доступ: клиент, владелец площадки или администратор
	if !req.Actor.CanView(booking, playground) {
		uc.logger.Warn("RescheduleBooking: user=%d has no access to booking id=%s", req.Actor.UserID, booking.ID)
		return nil, ErrAccessDenied
	}

	// 5. Статус и срок до текущего начала
	if !booking.Status.IsOccupying() {
		uc.logger.Warn("RescheduleBooking: booking id=%s has status %s", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrNotReschedulable, booking.Status)
	}
	if !booking.CanBeRescheduled(now, uc.location) {
		uc.logger.Warn("RescheduleBooking: booking id=%s starts too soon to reschedule", booking.ID)
		return nil, ErrRescheduleTooLate
	}

	// 6. Новое окно
	date := req.Date
	if date.IsZero() {
		date = booking.BookingDate
	}
	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}

	if err := validateNewWindow(playground, date, window, now, uc.location); err != nil {
		uc.logger.Warn("RescheduleBooking: new window rejected: %v", err)
		return nil, err
	}

	change := bookingRepo.RescheduleChange{
		ExpectedStatus: booking.Status,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		DetachSlot:     booking.SlotDefinitionID != nil && !keepsSlot(booking, date, window),
	}
	if change.DetachSlot {
		uc.logger.Info("RescheduleBooking: booking id=%s leaves slot id=%d, booked as hourly",
			booking.ID, *booking.SlotDefinitionID)
	}

	minutes, err := window.DurationMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	change.DurationHours = domain.MinutesToHours(minutes).Round(domain.MoneyScale)

	// 7. Пересчет цены только по явному запросу
	if req.Reprice {
		snapshot, err := uc.reprice(playground, booking, change, now)
		if err != nil {
			return nil, err
		}
		change.Price = snapshot
	}

	// 8. Проверка пересечений (без учета самого бронирования) и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.conflicts.Check(txCtx, booking.PlaygroundID, date, window, &booking.ID); err != nil {
			return err
		}
		return uc.bookingRepo.Reschedule(txCtx, booking.ID, change, now)
	})
	if err != nil {
		return nil, uc.mapTxError(booking, change, err)
	}

	applyChange(booking, change, now)

	uc.logger.Info("RescheduleBooking: booking id=%s moved to %s %s-%s",
		booking.ID, date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	uc.notifier.Notify(ctx, events.NewBookingEvent(events.BookingRescheduled, booking, now))

	return models.FromDomainBooking(booking), nil
}

// reprice считает цену нового окна. Скидка, примененная при создании, сохраняется
// в пределах новой базовой стоимости. Цена слота с фиксированной ценой не меняется,
// пока бронирование остается в его окне.
func (uc *UseCase) reprice(playground *domain.Playground, booking *domain.Booking, change bookingRepo.RescheduleChange, now time.Time) (*bookingRepo.PriceSnapshot, error) {
	if !change.DetachSlot && booking.SlotKind != nil && booking.SlotKind.IsFlatRate() {
		uc.logger.Info("RescheduleBooking: booking id=%s is a %s slot, price kept", booking.ID, *booking.SlotKind)
		return nil, nil
	}

	breakdown, err := uc.pricingEngine.Calculate(playground, pricing.Request{
		Date:       change.Date,
		StartTime:  change.StartTime,
		EndTime:    change.EndTime,
		AmenityIDs: booking.SelectedAmenities,
		At:         now,
	})
	if err != nil {
		uc.logger.Error("RescheduleBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}
	price := breakdown.Rounded()

	discount := decimal.Min(booking.DiscountAmount, price.Subtotal)
	final := decimal.Max(decimal.Zero, price.Subtotal.Sub(discount)).Add(price.AmenityFees)

	return &bookingRepo.PriceSnapshot{
		PricePerHour:   price.PricePerHour,
		TotalAmount:    price.Subtotal,
		DiscountAmount: discount,
		AmenityFees:    price.AmenityFees,
		FinalAmount:    final,
	}, nil
}

// mapTxError переводит ошибку транзакции в ошибку usecase
func (uc *UseCase) mapTxError(booking *domain.Booking, change bookingRepo.RescheduleChange, err error) error {
	var conflictErr *conflicts.ConflictError

	switch {
	case errors.As(err, &conflictErr):
		uc.metrics.BookingConflict("reschedule")
		uc.logger.Warn("RescheduleBooking: booking id=%s, new window %s %s-%s %v",
			booking.ID, change.Date.Format(domain.DateFormat), change.StartTime, change.EndTime, conflictErr)
		return fmt.Errorf("%w: %w", ErrSlotUnavailable, conflictErr)
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable), txmanager.IsSerializationError(err):
		uc.metrics.BookingConflict("reschedule")
		uc.logger.Warn("RescheduleBooking: lost race for booking id=%s: %v", booking.ID, err)
		return ErrSlotUnavailable
	case errors.Is(err, bookingRepo.ErrStatusChanged):
		uc.logger.Warn("RescheduleBooking: booking id=%s changed concurrently, expected status=%s", booking.ID, change.ExpectedStatus)
		return ErrConcurrentUpdate
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		uc.logger.Warn("RescheduleBooking: booking id=%s disappeared during update", booking.ID)
		return ErrBookingNotFound
	default:
		uc.logger.Error("RescheduleBooking: transaction failed for booking id=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

// keepsSlot сообщает, остается ли бронирование в окне своего слота.
// Слот повторяется по дню недели, поэтому перенос на тот же день недели с тем же окном его сохраняет.
func keepsSlot(booking *domain.Booking, date time.Time, window domain.TimeWindow) bool {
	return domain.DayOfWeekFromDate(date) == domain.DayOfWeekFromDate(booking.BookingDate) &&
		booking.Window().Equal(window)
}

// applyChange переносит сохраненные изменения в модель
func applyChange(booking *domain.Booking, change bookingRepo.RescheduleChange, at time.Time) {
	booking.BookingDate = change.Date
	booking.StartTime = change.StartTime
	booking.EndTime = change.EndTime
	booking.DurationHours = change.DurationHours
	booking.UpdatedAt = at

	if change.DetachSlot {
		booking.SlotDefinitionID = nil
		booking.SlotKind = nil
	}

	if change.Price != nil {
		booking.PricePerHour = change.Price.PricePerHour
		booking.TotalAmount = change.Price.TotalAmount
		booking.DiscountAmount = change.Price.DiscountAmount
		booking.AmenityFees = change.Price.AmenityFees
		booking.FinalAmount = change.Price.FinalAmount
	}
}
