package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/booking"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo      BookingRepository
	playgroundClient PlaygroundClient
	notifier         Notifier
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// location - часовой пояс, в котором заданы даты и время бронирований.
func NewService(
	bookingRepo BookingRepository,
	playgroundClient PlaygroundClient,
	notifier Notifier,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		playgroundClient: playgroundClient,
		notifier:         notifier,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту, владельцу площадки и администратору
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований клиента
// Клиент видит только свои бронирования, администратор - любые
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, ptr.Value(req.Status))

	if !req.Actor.IsAdmin && req.Actor.UserID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d is not allowed to read bookings of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPlaygroundBookings получает бронирования площадки с фильтрацией по периоду и статусу
// Доступно только владельцу площадки и администратору
func (s *Service) GetPlaygroundBookings(ctx context.Context, req *models.GetPlaygroundBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetPlaygroundBookings: fetching bookings for playground=%d, user=%d", req.PlaygroundID, req.Actor.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if _, err := s.checkManagerAccess(ctx, req.PlaygroundID, req.Actor); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPlaygroundBookings: invalid filter for playground=%d: %v", req.PlaygroundID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	if filter.StartDate != nil && filter.EndDate != nil && domain.DateBefore(*filter.EndDate, *filter.StartDate) {
		s.logger.Warn("GetPlaygroundBookings: endDate before startDate for playground=%d", req.PlaygroundID)
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPlaygroundBookings: repository error for playground=%d: %v", req.PlaygroundID, err)
		return nil, fmt.Errorf("%w: GetPlaygroundBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPlaygroundBookings: successfully fetched %d bookings for playground=%d", len(bookings), req.PlaygroundID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и рассчитывает возврат
// Отменить может клиент, владелец площадки или администратор, не позднее чем за 24 часа до начала
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%d", bookingID, req.Actor.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, req.Actor); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%s", req.Actor.UserID, bookingID)
		return nil, err
	}

	now := s.timeProvider.Now().In(s.location)

	if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}

	start, err := booking.StartAt(s.location)
	if err != nil {
		s.logger.Error("Cancel: booking id=%s has malformed start time %q: %v", bookingID, booking.StartTime, err)
		return nil, fmt.Errorf("%w: Cancel - malformed start time: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled(now, s.location) {
		left := start.Sub(now).Truncate(time.Minute)
		s.logger.Warn("Cancel: booking id=%s starts in %s, cancellation window closed", bookingID, left)
		return nil, fmt.Errorf("%w: booking starts in %s", ErrCancellationWindowClosed, formatLeadTime(left))
	}

	refundAmount := domain.CalculateRefundAmount(booking.FinalAmount, now, start)
	refundStatus := domain.RefundStatusFor(refundAmount)

	change := bookingRepo.StatusChange{
		From:               booking.Status,
		To:                 domain.StatusCancelled,
		At:                 now,
		CancellationReason: req.CancellationReason,
		RefundAmount:       &refundAmount,
		RefundStatus:       &refundStatus,
	}

	if err := s.applyTransition(ctx, "Cancel", booking, change); err != nil {
		return nil, err
	}

	booking.CancellationReason = req.CancellationReason
	booking.RefundAmount = refundAmount
	booking.RefundStatus = refundStatus

	s.afterTransition(ctx, booking, now)

	s.logger.Info("Cancel: successfully cancelled booking id=%s, refund=%s (%s)",
		bookingID, models.FormatMoney(refundAmount), refundStatus)

	return &models.CancelBookingResponse{
		Booking:      models.FromDomainBooking(booking),
		Status:       string(booking.Status),
		RefundAmount: models.FormatMoney(refundAmount),
		RefundStatus: string(refundStatus),
	}, nil
}

// UpdateStatus переводит бронирование владельцем площадки:
// pending -> confirmed, confirmed -> completed, confirmed -> no_show.
// Завершение и неявка допустимы только после окончания окна бронирования.
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%d",
		bookingID, req.Status, req.Actor.UserID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil || newStatus == domain.StatusPending || newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: unsupported status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %q, expected confirmed, completed or no_show", ErrInvalidStatus, req.Status)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.checkManagerAccess(ctx, booking.PlaygroundID, req.Actor); err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: booking id=%s cannot move from %s to %s", bookingID, booking.Status, newStatus)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	now := s.timeProvider.Now().In(s.location)

	if newStatus == domain.StatusCompleted || newStatus == domain.StatusNoShow {
		if !booking.HasEnded(now, s.location) {
			s.logger.Warn("UpdateStatus: booking id=%s has not ended yet, cannot mark %s", bookingID, newStatus)
			return nil, fmt.Errorf("%w: ends at %s %s", ErrBookingNotEnded,
				booking.BookingDate.Format(domain.DateFormat), booking.EndTime)
		}
	}

	change := bookingRepo.StatusChange{
		From: booking.Status,
		To:   newStatus,
		At:   now,
	}

	if err := s.applyTransition(ctx, "UpdateStatus", booking, change); err != nil {
		return nil, err
	}

	s.afterTransition(ctx, booking, now)

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// getBooking получает бронирование и приводит ошибки репозитория к ошибкам сервиса
func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// applyTransition сохраняет переход (compare-and-set по текущему статусу) и обновляет модель
func (s *Service) applyTransition(ctx context.Context, op string, booking *domain.Booking, change bookingRepo.StatusChange) error {
	if err := s.bookingRepo.Transition(ctx, booking.ID, change); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("%s: booking id=%s not found during update", op, booking.ID)
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusChanged):
			s.logger.Warn("%s: booking id=%s changed concurrently, expected status=%s", op, booking.ID, change.From)
			return ErrConcurrentUpdate
		default:
			s.logger.Error("%s: repository error for booking id=%s: %v", op, booking.ID, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	at := change.At
	booking.Status = change.To
	booking.UpdatedAt = at
	switch change.To {
	case domain.StatusConfirmed:
		booking.ConfirmedAt = &at
	case domain.StatusCancelled:
		booking.CancelledAt = &at
	case domain.StatusCompleted, domain.StatusNoShow:
		booking.CompletedAt = &at
	}

	return nil
}

// afterTransition фиксирует метрику и публикует событие
func (s *Service) afterTransition(ctx context.Context, booking *domain.Booking, at time.Time) {
	s.metrics.BookingTransition(string(booking.Status))

	if eventType, ok := events.TypeForStatus(booking.Status); ok {
		s.notifier.Notify(ctx, events.NewBookingEvent(eventType, booking, at))
	}
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у клиента, владельца площадки и администратора
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	if actor.IsAdmin || booking.IsOwnedBy(actor.UserID) {
		return nil
	}

	_, err := s.checkManagerAccess(ctx, booking.PlaygroundID, actor)
	return err
}

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

// formatLeadTime время до начала в виде "10h" или "1h30m"
func formatLeadTime(d time.Duration) string {
	if d <= 0 {
		return "the past (already started)"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
