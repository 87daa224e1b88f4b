package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
)

const (
	msgInvalidPlaygroundID = "invalid playground ID"
	msgMissingDate         = "date query parameter is required"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/playgrounds/{playgroundId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := handlers.PathInt64(r, "playgroundId")
	if err != nil {
		h.logger.Warn("GET /playgrounds/{id}/available-slots - Invalid playground ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlaygroundID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /playgrounds/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(playgroundID, dateStr)
	if err != nil {
		h.logger.Warn("GET /playgrounds/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /playgrounds/{id}/available-slots - Rejected: playground_id=%d, date=%s, error=%v",
				playgroundID, dateStr, err)
			return
		}
		h.logger.Error("GET /playgrounds/{id}/available-slots - Failed to get slots: playground_id=%d, date=%s, error=%v",
			playgroundID, dateStr, err)
		return
	}

	h.logger.Info("GET /playgrounds/{id}/available-slots - Slots retrieved successfully: playground_id=%d, date=%s, slots_count=%d",
		playgroundID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
