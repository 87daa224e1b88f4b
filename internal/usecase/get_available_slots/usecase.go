package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
)

// UseCase use case для получения слотов площадки на дату с их доступностью.
// Результат не кэшируется: каждый вызов читает текущее состояние бронирований.
type UseCase struct {
	bookingRepo      BookingRepository
	slotRepo         SlotRepository
	playgroundClient PlaygroundClient
	pricingEngine    PricingEngine
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	playgroundClient PlaygroundClient,
	pricingEngine PricingEngine,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		slotRepo:         slotRepo,
		playgroundClient: playgroundClient,
		pricingEngine:    pricingEngine,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: playground=%d, date=%s", req.PlaygroundID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе площадок
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем площадку
	playground, err := uc.playgroundClient.GetPlayground(ctx, req.PlaygroundID)
	if err != nil {
		if errors.Is(err, playgroundClient.ErrPlaygroundNotFound) {
			uc.logger.Warn("GetAvailableSlots: playground id=%d not found", req.PlaygroundID)
			return nil, ErrPlaygroundNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get playground id=%d: %v", req.PlaygroundID, err)
		return nil, fmt.Errorf("%w: failed to get playground: %v", ErrInternal, err)
	}

	response := &Response{
		PlaygroundID: req.PlaygroundID,
		Date:         req.Date,
		Slots:        []domain.SlotView{},
	}

	// 4. Рабочие часы на день недели
	hours, open := playground.HoursOn(req.Date)
	if !open {
		uc.logger.Info("GetAvailableSlots: playground=%d is closed on %s", req.PlaygroundID, req.Date.Format(domain.DateFormat))
		response.Reason = reason(domain.ReasonClosed)
		return response, nil
	}
	response.OperatingHours = &hours

	// 5. Активные определения слотов на этот день недели, по времени начала
	day := domain.DayOfWeekFromDate(req.Date)
	slots, err := uc.slotRepo.GetByPlayground(ctx, req.PlaygroundID, &day, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: playground=%d has no slots on %s", req.PlaygroundID, day)
		return response, nil
	}

	// Порядок по времени начала; при равенстве сохраняется порядок добавления
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	// 6. Занимающие бронирования на дату. Чтение без блокировок: для отображения устаревание допустимо.
	bookings, err := uc.bookingRepo.GetOccupyingByDate(ctx, req.PlaygroundID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Аннотируем каждый слот
	available := 0
	for _, slot := range slots {
		view := domain.SlotView{
			SlotDefinitionID: slot.ID,
			StartTime:        slot.StartTime,
			EndTime:          slot.EndTime,
			Kind:             slot.Kind,
		}

		// Слот вне рабочих часов нельзя забронировать, поэтому он не показывается
		if !hours.Contains(slot.Window()) {
			uc.logger.Warn("GetAvailableSlots: slot id=%d %s-%s is outside operating hours %s-%s, skipped",
				slot.ID, slot.StartTime, slot.EndTime, hours.Open, hours.Close)
			continue
		}

		breakdown, err := uc.pricingEngine.Calculate(playground, pricing.Request{Date: req.Date, Slot: slot})
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: slot id=%d cannot be priced, skipped: %v", slot.ID, err)
			continue
		}
		rounded := breakdown.Rounded()
		view.Price = rounded.Subtotal
		view.Currency = rounded.Currency

		annotateSlot(&view, slot, bookings, temporalReason(playground, req.Date, slot.StartTime, now))
		if view.IsAvailable {
			available++
		}

		response.Slots = append(response.Slots, view)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for playground=%d, date=%s",
		available, len(response.Slots), req.PlaygroundID, req.Date.Format(domain.DateFormat))

	return response, nil
}
