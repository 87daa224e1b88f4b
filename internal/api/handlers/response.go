package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Коды ошибок в теле ответа
const (
	CodeSlotUnavailable   = "slot_unavailable"
	CodeInvalidTimeWindow = "invalid_time_window"
	CodeTooLate           = "too_late"
	CodeTooFar            = "too_far"
	CodePolicyViolation   = "policy_violation"
	CodeNotFound          = "not_found"
	CodePermissionDenied  = "permission_denied"
	CodeUnauthorized      = "unauthorized"
	CodeInvalidRequest    = "invalid_request"
	CodeInternalError     = "internal_error"
)

const (
	maxBodyBytes = 1 << 20

	msgInternalError = "internal server error"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Conflicts []ConflictEntry `json:"conflicts,omitempty"`
}

// ConflictEntry бронирование, с которым пересекается запрошенное окно
type ConflictEntry struct {
	BookingID string `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// DecodeJSON читает тело запроса в v. Неизвестные поля запрещены.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку с кодом и пояснением
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodePermissionDenied, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}
