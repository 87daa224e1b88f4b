package update_booking_status

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model: status одно из confirmed, completed, no_show
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actor domain.Actor) (*models.UpdateStatusRequest, error) {
	status := strings.ToLower(strings.TrimSpace(r.Status))
	if status == "" {
		return nil, errors.New("status is required")
	}
	return &models.UpdateStatusRequest{Actor: actor, Status: status}, nil
}
