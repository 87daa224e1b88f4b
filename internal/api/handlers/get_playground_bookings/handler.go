package get_playground_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/bookingview"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
)

const (
	msgInvalidPlaygroundID = "invalid playground ID"
	msgMissingUserID       = "user is not authenticated"
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

// Handle GET /api/v1/playgrounds/{playgroundId}/bookings
// Query params: date | startDate, endDate; status; includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := handlers.PathInt64(r, "playgroundId")
	if err != nil {
		h.logger.Warn("GET /playgrounds/{id}/bookings - Invalid playground ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlaygroundID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /playgrounds/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(playgroundID, actor, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /playgrounds/{id}/bookings - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.GetPlaygroundBookings(r.Context(), serviceReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /playgrounds/{id}/bookings - Rejected: playground_id=%d, user_id=%d, error=%v",
				playgroundID, actor.UserID, err)
			return
		}
		h.logger.Error("GET /playgrounds/{id}/bookings - Failed to get bookings: playground_id=%d, error=%v", playgroundID, err)
		return
	}

	h.logger.Info("GET /playgrounds/{id}/bookings - Bookings retrieved successfully: playground_id=%d, user_id=%d, count=%d",
		playgroundID, actor.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, bookingview.FromBookingList(result))
}
