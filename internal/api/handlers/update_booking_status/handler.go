package update_booking_status

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/bookingview"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
)

const (
	msgInvalidBookingID   = "invalid booking ID"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "user is not authenticated"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
// Доступно владельцу площадки и администратору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), bookingID, serviceReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PATCH /bookings/{id}/status - Transition rejected: booking_id=%s, to=%s, user_id=%d, error=%v",
				bookingID, serviceReq.Status, actor.UserID, err)
			return
		}
		h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%s, error=%v", bookingID, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking status updated: booking_id=%s, status=%s, user_id=%d",
		bookingID, result.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, bookingview.FromBooking(result))
}
