package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	Actor     domain.Actor
	BookingID uuid.UUID
	Date      time.Time // нулевое значение - дата не меняется
	StartTime types.TimeString
	EndTime   types.TimeString
	// Reprice пересчитать стоимость по новому окну; по умолчанию цена сохраняется
	Reprice bool
}
