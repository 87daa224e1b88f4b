package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/bookingview"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "user is not authenticated"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /bookings - Booking rejected: user_id=%d, playground_id=%d, error=%v",
				actor.UserID, req.PlaygroundID, err)
			return
		}
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, playground_id=%d, error=%v",
			actor.UserID, req.PlaygroundID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%d, playground_id=%d, status=%s",
		result.ID, actor.UserID, req.PlaygroundID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, bookingview.FromBooking(result))
}
