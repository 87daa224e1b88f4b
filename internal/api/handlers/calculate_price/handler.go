package calculate_price

import (
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
)

const (
	msgInvalidPlaygroundID = "invalid playground ID"
	msgInvalidRequestBody  = "invalid request body"
)

type Handler struct {
	useCase CalculatePriceUseCase
	logger  Logger
}

func NewHandler(useCase CalculatePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/playgrounds/{playgroundId}/price
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	playgroundID, err := handlers.PathInt64(r, "playgroundId")
	if err != nil {
		h.logger.Warn("POST /playgrounds/{id}/price - Invalid playground ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlaygroundID)
		return
	}

	var req PriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /playgrounds/{id}/price - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(playgroundID)
	if err != nil {
		h.logger.Warn("POST /playgrounds/{id}/price - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /playgrounds/{id}/price - Rejected: playground_id=%d, error=%v", playgroundID, err)
			return
		}
		h.logger.Error("POST /playgrounds/{id}/price - Failed to calculate price: playground_id=%d, error=%v", playgroundID, err)
		return
	}

	h.logger.Info("POST /playgrounds/{id}/price - Price calculated: playground_id=%d, final=%s %s",
		playgroundID, result.FinalAmount.StringFixed(2), result.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
