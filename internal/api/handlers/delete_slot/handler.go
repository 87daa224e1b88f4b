package delete_slot

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/slots/models"
)

const (
	msgInvalidPlaygroundID = "invalid playground ID"
	msgInvalidSlotID       = "invalid slot ID"
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

// Handle DELETE /api/v1/playgrounds/{playgroundId}/slots/{slotId}
// Доступно владельцу площадки и администратору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := handlers.PathInt64(r, "playgroundId")
	if err != nil {
		h.logger.Warn("DELETE /playgrounds/{id}/slots/{slotId} - Invalid playground ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlaygroundID)
		return
	}

	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /playgrounds/{id}/slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /playgrounds/{id}/slots/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteSlotRequest{
		Actor:        actor,
		PlaygroundID: playgroundID,
		SlotID:       slotID,
	})
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("DELETE /playgrounds/{id}/slots/{slotId} - Rejected: playground_id=%d, slot_id=%d, user_id=%d, error=%v",
				playgroundID, slotID, actor.UserID, err)
			return
		}
		h.logger.Error("DELETE /playgrounds/{id}/slots/{slotId} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
		return
	}

	h.logger.Info("DELETE /playgrounds/{id}/slots/{slotId} - Slot deleted successfully: playground_id=%d, slot_id=%d, user_id=%d",
		playgroundID, slotID, actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}
