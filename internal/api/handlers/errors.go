package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/conflicts"
)

// Classify определяет HTTP статус и код ответа по виду ошибки.
// Ошибки, не относящиеся ни к одному виду, считаются внутренними.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		return http.StatusConflict, CodeSlotUnavailable
	case errors.Is(err, domain.ErrInvalidTimeWindow):
		return http.StatusBadRequest, CodeInvalidTimeWindow
	case errors.Is(err, domain.ErrTooLate):
		return http.StatusUnprocessableEntity, CodeTooLate
	case errors.Is(err, domain.ErrTooFar):
		return http.StatusUnprocessableEntity, CodeTooFar
	case errors.Is(err, domain.ErrPolicyViolation):
		return http.StatusUnprocessableEntity, CodePolicyViolation
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, CodePermissionDenied
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidRequest
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// RespondDomainError отправляет структурированную ошибку, объясняющую причину отказа.
// Для занятого слота в ответ добавляются пересекающиеся бронирования.
// Возвращает false для внутренних ошибок: их текст клиенту не показывается.
func RespondDomainError(w http.ResponseWriter, err error) bool {
	status, code := Classify(err)
	if code == CodeInternalError {
		RespondInternalError(w)
		return false
	}

	body := ErrorResponse{Error: code, Message: err.Error()}

	var conflictErr *conflicts.ConflictError
	if errors.As(err, &conflictErr) {
		body.Conflicts = make([]ConflictEntry, 0, len(conflictErr.Conflicts))
		for _, c := range conflictErr.Conflicts {
			body.Conflicts = append(body.Conflicts, ConflictEntry{
				BookingID: c.BookingID.String(),
				StartTime: c.Window.Start.String(),
				EndTime:   c.Window.End.String(),
				Status:    string(c.Status),
			})
		}
	}

	RespondJSON(w, status, body)
	return true
}
