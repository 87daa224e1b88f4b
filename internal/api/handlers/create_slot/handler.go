package create_slot

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/list_slots"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
)

const (
	msgInvalidPlaygroundID = "invalid playground ID"
	msgInvalidRequestBody  = "invalid request body"
	msgMissingUserID       = "user is not authenticated"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/playgrounds/{playgroundId}/slots
// Доступно владельцу площадки и администратору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := handlers.PathInt64(r, "playgroundId")
	if err != nil {
		h.logger.Warn("POST /playgrounds/{id}/slots - Invalid playground ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlaygroundID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /playgrounds/{id}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /playgrounds/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(playgroundID, actor))
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /playgrounds/{id}/slots - Rejected: playground_id=%d, user_id=%d, error=%v",
				playgroundID, actor.UserID, err)
			return
		}
		h.logger.Error("POST /playgrounds/{id}/slots - Failed to create slot: playground_id=%d, error=%v", playgroundID, err)
		return
	}

	h.logger.Info("POST /playgrounds/{id}/slots - Slot created successfully: playground_id=%d, slot_id=%d, user_id=%d",
		playgroundID, result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, list_slots.FromSlot(*result))
}
