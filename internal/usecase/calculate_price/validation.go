package calculate_price

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PlaygroundID <= 0 {
		return fmt.Errorf("%w: playgroundID must be positive", ErrInvalidInput)
	}

	if len(req.AmenityIDs) > domain.MaxAmenitiesPerBooking {
		return fmt.Errorf("%w: at most %d amenities allowed", ErrInvalidInput, domain.MaxAmenitiesPerBooking)
	}

	if req.DiscountCode != nil && strings.TrimSpace(*req.DiscountCode) == "" {
		req.DiscountCode = nil
	}

	if req.SlotDefinitionID != nil {
		if *req.SlotDefinitionID <= 0 {
			return fmt.Errorf("%w: slotDefinitionId must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required without slotDefinitionId", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", domain.ErrInvalidTimeWindow, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", domain.ErrInvalidTimeWindow, err)
	}

	if req.StartTime.Equal(req.EndTime) {
		return ErrInvalidWindow
	}

	return nil
}
