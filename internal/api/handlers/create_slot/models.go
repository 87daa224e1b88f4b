package create_slot

import (
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	DayOfWeek   string  `json:"dayOfWeek"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime,omitempty"` // пусто = длительность по умолчанию площадки
	Kind        string  `json:"kind,omitempty"`
	Price       *string `json:"price,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	MaxBookings *int    `json:"maxBookings,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Формат полей проверяет сервис.
func (r *CreateSlotRequest) ToServiceRequest(playgroundID int64, actor domain.Actor) *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		Actor:        actor,
		PlaygroundID: playgroundID,
		DayOfWeek:    r.DayOfWeek,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Kind:         r.Kind,
		Price:        r.Price,
		Currency:     r.Currency,
		MaxBookings:  r.MaxBookings,
		Description:  r.Description,
	}
}
