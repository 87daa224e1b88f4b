package calculate_price

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Request модель запроса расчета цены.
// Окно задается либо StartTime/EndTime, либо SlotDefinitionID.
type Request struct {
	PlaygroundID     int64
	Date             time.Time // опционально, для проверки дня слота
	StartTime        types.TimeString
	EndTime          types.TimeString
	SlotDefinitionID *int64
	AmenityIDs       []string
	DiscountCode     *string
}

// Response модель ответа с расчетом цены, суммы округлены до копеек
type Response struct {
	PlaygroundID     int64
	SlotDefinitionID *int64
	pricing.Breakdown
}
