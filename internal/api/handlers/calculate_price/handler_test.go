package calculate_price

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
	calculatePrice "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/calculate_price"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

type fakeUseCase struct {
	got  *calculatePrice.Request
	resp *calculatePrice.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *calculatePrice.Request) (*calculatePrice.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc CalculatePriceUseCase, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/playgrounds/{playgroundId}/price", NewHandler(uc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Breakdown(t *testing.T) {
	uc := &fakeUseCase{resp: &calculatePrice.Response{
		PlaygroundID: 3,
		Breakdown: pricing.Breakdown{
			StartTime:     "22:00",
			EndTime:       "01:00",
			DurationHours: decimal.NewFromInt(3),
			PricePerHour:  decimal.NewFromInt(500),
			Subtotal:      decimal.NewFromInt(1500),
			AmenityFees:   decimal.NewFromInt(100),
			Discount:      decimal.NewFromInt(150),
			FinalAmount:   decimal.NewFromInt(1450),
			Currency:      "BDT",
			SlotKind:      domain.SlotKindRegular,
			Overnight:     true,
			Amenities:     []pricing.AmenityCharge{{ID: "lights", Name: "Floodlights", Price: decimal.NewFromInt(100)}},
			CouponCode:    ptr.Ptr("SAVE10"),
		},
	}}

	// публичный endpoint: заголовки пользователя не нужны
	rec := serve(uc, "/playgrounds/3/price", `{
		"date": "2025-06-03",
		"startTime": "22:00",
		"endTime": "01:00",
		"amenityIds": ["lights"],
		"discountCode": "save10"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.PlaygroundID)
	assert.Equal(t, "2025-06-03", uc.got.Date.Format(domain.DateFormat))
	assert.Equal(t, types.TimeString("22:00"), uc.got.StartTime)
	assert.Equal(t, types.TimeString("01:00"), uc.got.EndTime)
	assert.Equal(t, []string{"lights"}, uc.got.AmenityIDs)
	assert.Equal(t, ptr.Ptr("save10"), uc.got.DiscountCode)

	var body PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Overnight)
	assert.Equal(t, "3.00", body.DurationHours)
	assert.Equal(t, "1500.00", body.Subtotal)
	assert.Equal(t, "150.00", body.Discount)
	assert.Equal(t, "1450.00", body.FinalAmount)
	assert.Equal(t, "৳1450.00", body.DisplayFinalAmount)
	assert.Equal(t, "regular", body.SlotKind)
	require.Len(t, body.Amenities, 1)
	assert.Equal(t, AmenityCharge{ID: "lights", Name: "Floodlights", Price: "100.00"}, body.Amenities[0])
}

func TestHandle_SlotDefinitionWithoutWindow(t *testing.T) {
	uc := &fakeUseCase{resp: &calculatePrice.Response{
		PlaygroundID:     3,
		SlotDefinitionID: ptr.Ptr(int64(9)),
		Breakdown:        pricing.Breakdown{SlotKind: domain.SlotKindPass, Currency: "USD", FinalAmount: decimal.NewFromInt(90)},
	}}

	rec := serve(uc, "/playgrounds/3/price", `{"slotDefinitionId":9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, ptr.Ptr(int64(9)), uc.got.SlotDefinitionID)
	assert.True(t, uc.got.Date.IsZero())
	assert.True(t, uc.got.StartTime.IsZero())
	assert.Contains(t, rec.Body.String(), `"slotKind":"pass"`)
	assert.Contains(t, rec.Body.String(), `"displayFinalAmount":"$90.00"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		status int
		code   string
	}{
		{name: "bad playground id", target: "/playgrounds/zero/price", body: `{}`, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "negative playground id", target: "/playgrounds/-1/price", body: `{}`, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "empty body", target: "/playgrounds/3/price", status: http.StatusBadRequest, code: "invalid_request"},
		{name: "bad date", target: "/playgrounds/3/price", body: `{"date":"tomorrow"}`, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "bad time", target: "/playgrounds/3/price", body: `{"startTime":"25:00","endTime":"26:00"}`, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "unknown playground", target: "/playgrounds/3/price", body: `{"startTime":"10:00","endTime":"11:00"}`, err: calculatePrice.ErrPlaygroundNotFound, status: http.StatusNotFound, code: "not_found"},
		{name: "invalid coupon", target: "/playgrounds/3/price", body: `{"startTime":"10:00","endTime":"11:00","discountCode":"X"}`, err: calculatePrice.ErrInvalidCoupon, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "zero length window", target: "/playgrounds/3/price", body: `{"startTime":"10:00","endTime":"10:00"}`, err: calculatePrice.ErrInvalidWindow, status: http.StatusBadRequest, code: "invalid_time_window"},
		{name: "internal", target: "/playgrounds/3/price", body: `{"startTime":"10:00","endTime":"11:00"}`, err: calculatePrice.ErrInternal, status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			rec := serve(uc, tt.target, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error":"`+tt.code+`"`)
		})
	}
}
