package cancel_booking

import (
	"strings"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers/bookingview"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model. Тело запроса необязательно.
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking      *bookingview.Booking `json:"booking"`
	Status       string               `json:"status"`
	RefundAmount string               `json:"refundAmount"`
	RefundStatus string               `json:"refundStatus"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actor domain.Actor) *models.CancelBookingRequest {
	req := &models.CancelBookingRequest{Actor: actor}
	if r.CancellationReason != nil {
		if reason := strings.TrimSpace(*r.CancellationReason); reason != "" {
			req.CancellationReason = &reason
		}
	}
	return req
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.CancelBookingResponse) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:      bookingview.FromBooking(resp.Booking),
		Status:       resp.Status,
		RefundAmount: resp.RefundAmount,
		RefundStatus: resp.RefundStatus,
	}
}
