package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Request модель запроса на создание бронирования.
// Окно задается либо StartTime/EndTime, либо SlotDefinitionID (кастомный слот или абонемент).
type Request struct {
	Actor             domain.Actor // клиент, от имени которого создается бронирование
	PlaygroundID      int64
	Date              time.Time // дата бронирования (без времени)
	StartTime         types.TimeString
	EndTime           types.TimeString
	SlotDefinitionID  *int64
	PaymentMethod     domain.PaymentMethod
	PaymentReceiptRef *string
	AmenityIDs        []string
	DiscountCode      *string
	NumberOfPlayers   int
	SpecialRequests   *string
}
