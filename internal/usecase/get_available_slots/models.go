package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	PlaygroundID int64     // ID площадки
	Date         time.Time // Дата (без времени)
}

// Response модель ответа со слотами на дату
type Response struct {
	PlaygroundID int64
	Date         time.Time
	// Reason closed, если площадка в этот день не работает; Slots тогда пуст
	Reason         *domain.UnavailableReason
	OperatingHours *domain.OperatingHours
	Slots          []domain.SlotView
}
