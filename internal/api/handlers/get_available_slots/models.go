package get_available_slots

import (
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string                  `json:"date"`
	PlaygroundID   int64                   `json:"playgroundId"`
	Reason         *string                 `json:"reason"`
	OperatingHours *OperatingHoursResponse `json:"operatingHours,omitempty"`
	Slots          []AvailableSlot         `json:"slots"`
}

// OperatingHoursResponse часы работы площадки в выбранный день
type OperatingHoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// AvailableSlot модель слота на дату
type AvailableSlot struct {
	SlotDefinitionID *int64  `json:"slotDefinitionId,omitempty"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	Kind             string  `json:"kind"`
	IsAvailable      bool    `json:"isAvailable"`
	Price            string  `json:"price"`
	Currency         string  `json:"currency"`
	DisplayPrice     string  `json:"displayPrice"`
	Reason           *string `json:"reason"`
	Occupied         int     `json:"occupied"`
	MaxBookings      int     `json:"maxBookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:    slot.StartTime.String(),
			EndTime:      slot.EndTime.String(),
			Kind:         string(slot.Kind),
			IsAvailable:  slot.IsAvailable,
			Price:        slot.Price.StringFixed(domain.MoneyScale),
			Currency:     slot.Currency,
			DisplayPrice: handlers.FormatPrice(slot.Price, slot.Currency),
			Reason:       reasonString(slot.Reason),
			Occupied:     slot.Occupied,
			MaxBookings:  slot.MaxBookings,
		}
		if slot.SlotDefinitionID > 0 {
			id := slot.SlotDefinitionID
			slots[i].SlotDefinitionID = &id
		}
	}

	result := &AvailableSlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		PlaygroundID: resp.PlaygroundID,
		Reason:       reasonString(resp.Reason),
		Slots:        slots,
	}

	if resp.OperatingHours != nil {
		result.OperatingHours = &OperatingHoursResponse{
			Open:  resp.OperatingHours.Open.String(),
			Close: resp.OperatingHours.Close.String(),
		}
	}

	return result
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(playgroundID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		PlaygroundID: playgroundID,
		Date:         date,
	}, nil
}

func reasonString(reason *domain.UnavailableReason) *string {
	if reason == nil {
		return nil
	}
	s := string(*reason)
	return &s
}
