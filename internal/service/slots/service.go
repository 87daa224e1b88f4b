package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/slot"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Service сервис управления определениями слотов площадок
type Service struct {
	slotRepo         SlotRepository
	playgroundClient PlaygroundClient
	logger           Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	playgroundClient PlaygroundClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:         slotRepo,
		playgroundClient: playgroundClient,
		logger:           logger,
	}
}

// List получает определения слотов площадки. Доступно всем.
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots for playground=%d, day=%v", req.PlaygroundID, req.DayOfWeek)

	var day *domain.DayOfWeek
	if req.DayOfWeek != nil {
		d := domain.DayOfWeek(strings.ToLower(*req.DayOfWeek))
		if !d.IsValid() {
			s.logger.Warn("List: invalid day=%s", *req.DayOfWeek)
			return nil, fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, *req.DayOfWeek)
		}
		day = &d
	}

	slots, err := s.slotRepo.GetByPlayground(ctx, req.PlaygroundID, day, !req.IncludeHidden)
	if err != nil {
		s.logger.Error("List: repository error for playground=%d: %v", req.PlaygroundID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d slots for playground=%d", len(slots), req.PlaygroundID)
	return models.FromDomainSlotList(slots), nil
}

// Create создает определение слота
// Доступно только владельцу площадки и администратору
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot for playground=%d, day=%s, window=%s-%s by user=%d",
		req.PlaygroundID, req.DayOfWeek, req.StartTime, req.EndTime, req.Actor.UserID)

	// 1. Проверяем права доступа
	playground, err := s.checkManagerAccess(ctx, req.PlaygroundID, req.Actor)
	if err != nil {
		return nil, err
	}

	// 2. Собираем и валидируем определение
	slot, err := buildSlot(req, playground)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateSlot) {
			s.logger.Warn("Create: slot %s %s-%s already exists for playground=%d",
				slot.DayOfWeek, slot.StartTime, slot.EndTime, req.PlaygroundID)
			return nil, ErrSlotAlreadyExists
		}
		s.logger.Error("Create: repository error for playground=%d: %v", req.PlaygroundID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d for playground=%d", created.ID, req.PlaygroundID)
	return models.FromDomainSlot(created), nil
}

// Delete выключает определение слота. Бронирования, сделанные по нему, сохраняются.
// Доступно только владельцу площадки и администратору
func (s *Service) Delete(ctx context.Context, req *models.DeleteSlotRequest) error {
	s.logger.Info("Delete: deleting slot id=%d of playground=%d by user=%d", req.SlotID, req.PlaygroundID, req.Actor.UserID)

	if _, err := s.checkManagerAccess(ctx, req.PlaygroundID, req.Actor); err != nil {
		return err
	}

	if err := s.slotRepo.Deactivate(ctx, req.PlaygroundID, req.SlotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%d not found in playground=%d", req.SlotID, req.PlaygroundID)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", req.SlotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", req.SlotID)
	return nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь владеет площадкой или является администратором
func (s *Service) checkManagerAccess(ctx context.Context, playgroundID int64, actor domain.Actor) (*domain.Playground, error) {
	playground, err := s.playgroundClient.GetPlayground(ctx, playgroundID)
	if err != nil {
		if errors.Is(err, playgroundClient.ErrPlaygroundNotFound) {
			s.logger.Warn("checkManagerAccess: playground id=%d not found", playgroundID)
			return nil, ErrPlaygroundNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get playground id=%d: %v", playgroundID, err)
		return nil, fmt.Errorf("%w: checkManagerAccess - failed to get playground: %v", ErrInternal, err)
	}

	if !actor.CanManage(playground) {
		s.logger.Warn("checkManagerAccess: user=%d does not manage playground=%d", actor.UserID, playgroundID)
		return nil, ErrAccessDenied
	}

	return playground, nil
}

// buildSlot собирает domain модель из запроса, подставляя значения по умолчанию
func buildSlot(req *models.CreateSlotRequest, playground *domain.Playground) (*domain.SlotDefinition, error) {
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidWindow, err)
	}

	slot := &domain.SlotDefinition{
		PlaygroundID: playground.ID,
		DayOfWeek:    domain.DayOfWeek(strings.ToLower(req.DayOfWeek)),
		StartTime:    start,
		Kind:         domain.SlotKind(strings.ToLower(req.Kind)),
		Currency:     strings.ToUpper(req.Currency),
		MaxBookings:  domain.DefaultMaxBookings,
		Active:       true,
		Description:  req.Description,
	}

	if slot.Kind == "" {
		slot.Kind = domain.SlotKindRegular
	}

	// Без конца слота длительность берется из настроек площадки
	if strings.TrimSpace(req.EndTime) == "" {
		end, err := start.AddMinutes(playground.DefaultSlotMinutes(slot.Kind))
		if err != nil {
			return nil, fmt.Errorf("%w: default duration from %s passes midnight", ErrInvalidWindow, start)
		}
		slot.EndTime = end
	} else {
		end, err := types.NewTimeStringFromString(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidWindow, err)
		}
		slot.EndTime = end
	}

	if slot.Currency == "" {
		slot.Currency = playground.EffectiveCurrency()
	}
	if req.MaxBookings != nil {
		slot.MaxBookings = *req.MaxBookings
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*req.Price))
		if err != nil {
			return nil, fmt.Errorf("%w: price %q is not a number", ErrInvalidInput, *req.Price)
		}
		slot.Price = &price
	}

	if err := slot.Window().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, slot.StartTime, slot.EndTime)
	}
	if err := slot.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Слот вне рабочих часов дня нельзя было бы забронировать
	if hours, ok := playground.OperatingHours[slot.DayOfWeek]; ok && hours.Active && !hours.Contains(slot.Window()) {
		return nil, fmt.Errorf("%w: %s-%s, open %s-%s", ErrOutsideOperatingHours,
			slot.StartTime, slot.EndTime, hours.Open, hours.Close)
	}

	return slot, nil
}
