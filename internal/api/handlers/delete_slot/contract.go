package delete_slot

import (
	"context"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/slots/models"
)

type SlotService interface {
	Delete(ctx context.Context, req *models.DeleteSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
