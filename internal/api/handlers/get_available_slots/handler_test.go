package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/playgrounds/{playgroundId}/available-slots", NewHandler(uc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	booked := domain.ReasonBooked
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		PlaygroundID:   3,
		Date:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		OperatingHours: &domain.OperatingHours{Open: "08:00", Close: "22:00", Active: true},
		Slots: []domain.SlotView{
			{SlotDefinitionID: 4, StartTime: "08:00", EndTime: "09:00", Kind: domain.SlotKindRegular, IsAvailable: true,
				Price: decimal.NewFromInt(20), Currency: "USD", MaxBookings: 1},
			{SlotDefinitionID: 9, StartTime: "09:00", EndTime: "10:00", Kind: domain.SlotKindRegular,
				Price: decimal.NewFromInt(1500), Currency: "BDT", Reason: &booked, Occupied: 1, MaxBookings: 1},
		},
	}}

	rec := serve(uc, "/playgrounds/3/available-slots?date=2025-06-02")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(3), uc.got.PlaygroundID)
	assert.Equal(t, "2025-06-02", uc.got.Date.Format(domain.DateFormat))

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Reason)
	require.NotNil(t, body.OperatingHours)
	assert.Equal(t, "08:00", body.OperatingHours.Open)
	require.Len(t, body.Slots, 2)

	assert.True(t, body.Slots[0].IsAvailable)
	require.NotNil(t, body.Slots[0].SlotDefinitionID)
	assert.Equal(t, "20.00", body.Slots[0].Price)
	assert.Equal(t, "$20.00", body.Slots[0].DisplayPrice)
	assert.Nil(t, body.Slots[0].Reason)

	assert.False(t, body.Slots[1].IsAvailable)
	require.NotNil(t, body.Slots[1].SlotDefinitionID)
	assert.Equal(t, int64(9), *body.Slots[1].SlotDefinitionID)
	assert.Equal(t, "৳1500.00", body.Slots[1].DisplayPrice)
	require.NotNil(t, body.Slots[1].Reason)
	assert.Equal(t, "booked", *body.Slots[1].Reason)
}

func TestHandle_ClosedDay(t *testing.T) {
	closed := domain.ReasonClosed
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		PlaygroundID: 3,
		Date:         time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		Reason:       &closed,
		Slots:        []domain.SlotView{},
	}}

	rec := serve(uc, "/playgrounds/3/available-slots?date=2025-06-08")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-06-08","playgroundId":3,"reason":"closed","slots":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad playground", "/playgrounds/abc/available-slots?date=2025-06-02", nil, http.StatusBadRequest},
		{"missing date", "/playgrounds/3/available-slots", nil, http.StatusBadRequest},
		{"bad date", "/playgrounds/3/available-slots?date=2025-13-40", nil, http.StatusBadRequest},
		{"not found", "/playgrounds/3/available-slots?date=2025-06-02", getAvailableSlots.ErrPlaygroundNotFound, http.StatusNotFound},
		{"internal", "/playgrounds/3/available-slots?date=2025-06-02", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
