package cancel_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
)

const bookingID = "7b0e3c9e-4a51-4a8e-9d0c-2f7c8a1e5b11"

type fakeService struct {
	gotID uuid.UUID
	got   *models.CancelBookingRequest
	resp  *models.CancelBookingResponse
	err   error
}

func (f *fakeService) Cancel(_ context.Context, id uuid.UUID, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	f.gotID = id
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc BookingService, id, body, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/bookings/{bookingId}/cancel", middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/cancel", reader)
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func cancelled() *models.CancelBookingResponse {
	return &models.CancelBookingResponse{
		Booking: &models.BookingResponse{
			ID:           bookingID,
			Status:       "cancelled",
			FinalAmount:  "40.00",
			Currency:     "USD",
			RefundAmount: "20.00",
			RefundStatus: "pending",
		},
		Status:       "cancelled",
		RefundAmount: "20.00",
		RefundStatus: "pending",
	}
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &fakeService{resp: cancelled()}

	rec := serve(svc, bookingID, `{"cancellationReason":"  rain  "}`, "42")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, uuid.MustParse(bookingID), svc.gotID)
	require.NotNil(t, svc.got)
	assert.Equal(t, domain.Actor{UserID: 42}, svc.got.Actor)
	require.NotNil(t, svc.got.CancellationReason)
	assert.Equal(t, "rain", *svc.got.CancellationReason)

	var body struct {
		Booking      map[string]interface{} `json:"booking"`
		Status       string                 `json:"status"`
		RefundAmount string                 `json:"refundAmount"`
		RefundStatus string                 `json:"refundStatus"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)
	assert.Equal(t, "20.00", body.RefundAmount)
	assert.Equal(t, "pending", body.RefundStatus)
	assert.Equal(t, bookingID, body.Booking["id"])
	assert.Equal(t, "$20.00", body.Booking["displayRefundAmount"])
}

func TestHandle_BodyIsOptional(t *testing.T) {
	svc := &fakeService{resp: cancelled()}

	rec := serve(svc, bookingID, "", "42")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Nil(t, svc.got.CancellationReason)

	// пустая причина не передается
	rec = serve(svc, bookingID, `{"cancellationReason":"   "}`, "42")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		userID string
		err    error
		status int
		code   string
	}{
		{name: "no user", id: bookingID, status: http.StatusUnauthorized},
		{name: "bad id", id: "42", userID: "42", status: http.StatusBadRequest, code: "invalid_request"},
		{name: "unknown field", id: bookingID, body: `{"refund":"all"}`, userID: "42", status: http.StatusBadRequest, code: "invalid_request"},
		{name: "too late", id: bookingID, userID: "42", err: bookings.ErrCancellationWindowClosed, status: http.StatusUnprocessableEntity, code: "too_late"},
		{name: "already cancelled", id: bookingID, userID: "42", err: bookings.ErrInvalidTransition, status: http.StatusUnprocessableEntity, code: "policy_violation"},
		{name: "stranger", id: bookingID, userID: "42", err: bookings.ErrAccessDenied, status: http.StatusForbidden, code: "permission_denied"},
		{name: "not found", id: bookingID, userID: "42", err: bookings.ErrBookingNotFound, status: http.StatusNotFound, code: "not_found"},
		{name: "internal", id: bookingID, userID: "42", err: bookings.ErrInternal, status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(svc, tt.id, tt.body, tt.userID)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Contains(t, rec.Body.String(), `"error":"`+tt.code+`"`)
			}
		})
	}
}
