package playgroundservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

type nopLogger struct {
	warnings int
}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  { l.warnings++ }
func (l *nopLogger) Error(string, ...interface{}) {}

const playgroundJSON = `{
	"id": 7,
	"owner_id": 99,
	"name": "Dhanmondi Turf",
	"price_per_hour": "1200.00",
	"currency": "BDT",
	"capacity": 14,
	"operating_hours": {
		"Monday": {"open": "08:00", "close": "23:00", "active": true},
		"sunday": {"open": "", "close": "", "active": false},
		"friday": {"open": "late", "close": "later", "active": true}
	},
	"advance_booking_days": 30,
	"auto_approval": true,
	"amenities": [
		{"id": 3, "name": "Bibs", "price": 50},
		{"id": "lights", "name": "Flood lights", "price": "200.50"},
		{"id": null, "name": "Broken", "price": 1}
	],
	"custom_pricing": {"custom_slot_hour": 23}
}`

func TestClient_GetPlayground(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/playgrounds/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(playgroundJSON))
	}))
	defer srv.Close()

	log := &nopLogger{}
	client := NewClient(srv.URL+"/", time.Second, log)

	p, err := client.GetPlayground(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(99), p.OwnerID)
	assert.True(t, decimal.RequireFromString("1200").Equal(p.PricePerHour))
	assert.True(t, p.AutoApproval)
	assert.Equal(t, 30, p.AdvanceBookingDays)

	monday, ok := p.OperatingHours[domain.Monday]
	require.True(t, ok)
	assert.Equal(t, "08:00", monday.Open.String())
	assert.True(t, monday.Active)

	_, ok = p.OperatingHours[domain.Friday]
	assert.False(t, ok, "malformed hours are dropped")
	assert.Equal(t, 1, log.warnings)

	require.Len(t, p.Amenities, 2)
	assert.Equal(t, "3", p.Amenities[0].ID)
	assert.Equal(t, "lights", p.Amenities[1].ID)
	price, err := p.Amenities[1].ParsePrice()
	require.NoError(t, err)
	assert.Equal(t, "200.5", price.String())
}

func TestClient_GetPlayground_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrPlaygroundNotFound},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInvalidResponse},
		{name: "bad json", status: http.StatusOK, body: "{", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second, &nopLogger{}).GetPlayground(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_GetPlayground_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 100*time.Millisecond, &nopLogger{}).GetPlayground(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
