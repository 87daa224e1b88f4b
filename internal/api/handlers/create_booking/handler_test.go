package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/create_booking"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *models.BookingResponse
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, body string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &models.BookingResponse{
		ID:          "7b0e3c9e-4a51-4a8e-9d0c-2f7c8a1e5b11",
		Status:      "pending",
		FinalAmount: "40.00",
		Currency:    "USD",
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, `{
		"playgroundId": 1,
		"bookingDate": "2025-06-03",
		"startTime": "10:00",
		"endTime": "11:30",
		"paymentMethod": "CARD",
		"amenityIds": ["balls"],
		"numberOfPlayers": 4
	}`, "42")

	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, domain.Actor{UserID: 42}, uc.got.Actor)
	assert.Equal(t, int64(1), uc.got.PlaygroundID)
	assert.Equal(t, "2025-06-03", uc.got.Date.Format(domain.DateFormat))
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	assert.Equal(t, "11:30", uc.got.EndTime.String())
	assert.Equal(t, domain.PaymentCard, uc.got.PaymentMethod)
	assert.Equal(t, []string{"balls"}, uc.got.AmenityIDs)
	assert.Equal(t, 4, uc.got.NumberOfPlayers)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "40.00", body["finalAmount"])
	assert.Equal(t, "$40.00", body["displayFinalAmount"])
}

func TestHandle_SlotUnavailable(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrSlotUnavailable}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, `{"playgroundId":1,"bookingDate":"2025-06-03","startTime":"10:00","endTime":"11:00"}`, "42")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"slot_unavailable"`)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID string
		status int
	}{
		{"no user", `{}`, "", http.StatusUnauthorized},
		{"malformed json", `{`, "42", http.StatusBadRequest},
		{"missing date", `{"playgroundId":1,"startTime":"10:00","endTime":"11:00"}`, "42", http.StatusBadRequest},
		{"bad date", `{"playgroundId":1,"bookingDate":"03.06.2025","startTime":"10:00","endTime":"11:00"}`, "42", http.StatusBadRequest},
		{"bad time", `{"playgroundId":1,"bookingDate":"2025-06-03","startTime":"ten","endTime":"11:00"}`, "42", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(NewHandler(uc, nopLogger{}), tt.body, tt.userID)

			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}
