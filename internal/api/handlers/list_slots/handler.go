package list_slots

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
)

const (
	msgInvalidPlaygroundID = "invalid playground ID"
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

// Handle GET /api/v1/playgrounds/{playgroundId}/slots
// Query params: dayOfWeek, includeHidden (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := handlers.PathInt64(r, "playgroundId")
	if err != nil {
		h.logger.Warn("GET /playgrounds/{id}/slots - Invalid playground ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlaygroundID)
		return
	}

	serviceReq, err := ToServiceRequest(playgroundID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /playgrounds/{id}/slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /playgrounds/{id}/slots - Rejected: playground_id=%d, error=%v", playgroundID, err)
			return
		}
		h.logger.Error("GET /playgrounds/{id}/slots - Failed to list slots: playground_id=%d, error=%v", playgroundID, err)
		return
	}

	h.logger.Info("GET /playgrounds/{id}/slots - Slots retrieved successfully: playground_id=%d, count=%d",
		playgroundID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
