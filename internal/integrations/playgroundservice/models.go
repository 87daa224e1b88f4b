package playgroundservice

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Playground модель площадки из каталога
type Playground struct {
	ID                 int64                      `json:"id"`
	OwnerID            int64                      `json:"owner_id"`
	Name               string                     `json:"name"`
	PricePerHour       decimal.Decimal            `json:"price_per_hour"`
	Currency           string                     `json:"currency"`
	Capacity           int                        `json:"capacity"`
	OperatingHours     map[string]OperatingHours  `json:"operating_hours"`
	AdvanceBookingDays int                        `json:"advance_booking_days"`
	AutoApproval       bool                       `json:"auto_approval"`
	Amenities          []Amenity                  `json:"amenities"`
	CustomPricing      map[string]json.RawMessage `json:"custom_pricing"`
}

// OperatingHours часы работы в один день недели
type OperatingHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Active bool   `json:"active"`
}

// Amenity дополнительная услуга. ID и цена приходят в произвольном JSON виде.
type Amenity struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
}

// ErrorResponse модель ошибки от PlaygroundService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toDomain преобразует ответ каталога в доменную модель.
// Дни с некорректными часами работы считаются закрытыми и возвращаются в skipped.
func (p *Playground) toDomain() (*domain.Playground, []string) {
	var skipped []string

	hours := make(map[domain.DayOfWeek]domain.OperatingHours, len(p.OperatingHours))
	for name, h := range p.OperatingHours {
		day := domain.DayOfWeek(strings.ToLower(strings.TrimSpace(name)))
		if !day.IsValid() {
			skipped = append(skipped, name)
			continue
		}
		open, errOpen := types.NewTimeStringFromString(h.Open)
		closing, errClose := types.NewTimeStringFromString(h.Close)
		if h.Active && (errOpen != nil || errClose != nil) {
			skipped = append(skipped, name)
			continue
		}
		hours[day] = domain.OperatingHours{Open: open, Close: closing, Active: h.Active}
	}

	amenities := make([]domain.Amenity, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		id := amenityID(a.ID)
		if id == "" {
			continue
		}
		amenities = append(amenities, domain.Amenity{ID: id, Name: a.Name, Price: a.Price})
	}

	return &domain.Playground{
		ID:                 p.ID,
		OwnerID:            p.OwnerID,
		Name:               p.Name,
		PricePerHour:       p.PricePerHour,
		Currency:           p.Currency,
		Capacity:           p.Capacity,
		OperatingHours:     hours,
		AdvanceBookingDays: p.AdvanceBookingDays,
		AutoApproval:       p.AutoApproval,
		Amenities:          amenities,
		CustomPricing:      p.CustomPricing,
	}, skipped
}

// amenityID приводит числовой или строковый id к строке
func amenityID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
