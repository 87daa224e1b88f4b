package get_booking

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/bookingview"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
)

const (
	msgInvalidBookingID = "invalid booking ID"
	msgMissingUserID    = "user is not authenticated"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит права доступа
	booking, err := h.service.GetByID(r.Context(), bookingID, actor)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /bookings/{id} - Rejected: booking_id=%s, user_id=%d, error=%v", bookingID, actor.UserID, err)
			return
		}
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s, user_id=%d", bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, bookingview.FromBooking(booking))
}
