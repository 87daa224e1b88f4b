package calculate_price

import (
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	calculatePrice "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/calculate_price"
)

// PriceRequest HTTP request model.
// Окно задается startTime/endTime либо slotDefinitionId; endTime раньше startTime означает окно через полночь.
type PriceRequest struct {
	Date             string   `json:"date,omitempty"`
	StartTime        string   `json:"startTime,omitempty"`
	EndTime          string   `json:"endTime,omitempty"`
	SlotDefinitionID *int64   `json:"slotDefinitionId,omitempty"`
	AmenityIDs       []string `json:"amenityIds,omitempty"`
	DiscountCode     *string  `json:"discountCode,omitempty"`
}

// PriceResponse HTTP response model
type PriceResponse struct {
	PlaygroundID       int64           `json:"playgroundId"`
	SlotDefinitionID   *int64          `json:"slotDefinitionId,omitempty"`
	SlotKind           string          `json:"slotKind"`
	StartTime          string          `json:"startTime"`
	EndTime            string          `json:"endTime"`
	Overnight          bool            `json:"overnight"`
	DurationHours      string          `json:"durationHours"`
	PricePerHour       string          `json:"pricePerHour"`
	Subtotal           string          `json:"subtotal"`
	AmenityFees        string          `json:"amenityFees"`
	Discount           string          `json:"discount"`
	FinalAmount        string          `json:"finalAmount"`
	Currency           string          `json:"currency"`
	DisplayFinalAmount string          `json:"displayFinalAmount"`
	CouponCode         *string         `json:"couponCode,omitempty"`
	Amenities          []AmenityCharge `json:"amenities"`
}

// AmenityCharge стоимость выбранной опции
type AmenityCharge struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *PriceRequest) ToUseCaseRequest(playgroundID int64) (*calculatePrice.Request, error) {
	req := &calculatePrice.Request{
		PlaygroundID:     playgroundID,
		SlotDefinitionID: r.SlotDefinitionID,
		AmenityIDs:       r.AmenityIDs,
		DiscountCode:     r.DiscountCode,
	}

	date, err := handlers.ParseOptionalDate(r.Date)
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.Date = *date
	}

	if req.StartTime, err = handlers.ParseTime(r.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = handlers.ParseTime(r.EndTime); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculatePrice.Response) *PriceResponse {
	amenities := make([]AmenityCharge, 0, len(resp.Amenities))
	for _, a := range resp.Amenities {
		amenities = append(amenities, AmenityCharge{
			ID:    a.ID,
			Name:  a.Name,
			Price: a.Price.StringFixed(domain.MoneyScale),
		})
	}

	return &PriceResponse{
		PlaygroundID:       resp.PlaygroundID,
		SlotDefinitionID:   resp.SlotDefinitionID,
		SlotKind:           string(resp.SlotKind),
		StartTime:          resp.StartTime.String(),
		EndTime:            resp.EndTime.String(),
		Overnight:          resp.Overnight,
		DurationHours:      resp.DurationHours.StringFixed(domain.MoneyScale),
		PricePerHour:       resp.PricePerHour.StringFixed(domain.MoneyScale),
		Subtotal:           resp.Subtotal.StringFixed(domain.MoneyScale),
		AmenityFees:        resp.AmenityFees.StringFixed(domain.MoneyScale),
		Discount:           resp.Discount.StringFixed(domain.MoneyScale),
		FinalAmount:        resp.FinalAmount.StringFixed(domain.MoneyScale),
		Currency:           resp.Currency,
		DisplayFinalAmount: handlers.FormatPrice(resp.FinalAmount, resp.Currency),
		CouponCode:         resp.CouponCode,
		Amenities:          amenities,
	}
}
