package list_slots

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/slots/models"
)

// SlotResponse определение слота с ценой для показа
type SlotResponse struct {
	models.SlotResponse
	DisplayPrice *string `json:"displayPrice,omitempty"`
}

// SlotListResponse HTTP response model
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(playgroundID int64, query url.Values) (*models.ListSlotsRequest, error) {
	req := &models.ListSlotsRequest{PlaygroundID: playgroundID}

	if day := query.Get("dayOfWeek"); day != "" {
		req.DayOfWeek = &day
	}

	if includeHiddenStr := query.Get("includeHidden"); includeHiddenStr != "" {
		includeHidden, err := strconv.ParseBool(includeHiddenStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeHidden value %q", includeHiddenStr)
		}
		req.IncludeHidden = includeHidden
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotListResponse) *SlotListResponse {
	result := &SlotListResponse{Slots: make([]SlotResponse, 0, len(resp.Slots))}
	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, FromSlot(slot))
	}
	return result
}

// FromSlot добавляет цену с символом валюты, если у слота своя цена
func FromSlot(slot models.SlotResponse) SlotResponse {
	item := SlotResponse{SlotResponse: slot}
	if slot.Price != nil {
		if price, err := handlers.ParseAmount(*slot.Price); err == nil {
			display := handlers.FormatPrice(price, slot.Currency)
			item.DisplayPrice = &display
		}
	}
	return item
}
