package get_playground_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день; startDate/endDate задают период и не сочетаются с date.
func ToServiceRequest(playgroundID int64, actor domain.Actor, query url.Values) (*models.GetPlaygroundBookingsRequest, error) {
	req := &models.GetPlaygroundBookingsRequest{
		Actor:        actor,
		PlaygroundID: playgroundID,
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if dateStr := query.Get("date"); dateStr != "" {
		if query.Get("startDate") != "" || query.Get("endDate") != "" {
			return nil, fmt.Errorf("date cannot be combined with startDate/endDate")
		}
		date, err := handlers.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		var err error
		if req.StartDate, err = handlers.ParseOptionalDate(query.Get("startDate")); err != nil {
			return nil, err
		}
		if req.EndDate, err = handlers.ParseOptionalDate(query.Get("endDate")); err != nil {
			return nil, err
		}
		if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
			return nil, fmt.Errorf("endDate must not be before startDate")
		}
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value %q", includeInactiveStr)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
