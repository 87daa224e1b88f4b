package models

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание определения слота
type CreateSlotRequest struct {
	Actor        domain.Actor
	PlaygroundID int64
	DayOfWeek    string
	StartTime    string
	EndTime      string  // пусто = длительность по умолчанию площадки
	Kind         string  // пусто = regular
	Price        *string // nil = почасовая ставка площадки
	Currency     string  // пусто = валюта площадки
	MaxBookings  *int    // nil = 1
	Description  *string
}

// DeleteSlotRequest запрос на удаление определения слота
type DeleteSlotRequest struct {
	Actor        domain.Actor
	PlaygroundID int64
	SlotID       int64
}

// ListSlotsRequest запрос на получение слотов площадки
type ListSlotsRequest struct {
	PlaygroundID  int64
	DayOfWeek     *string // nil = все дни
	IncludeHidden bool    // включить выключенные слоты
}

// Response модели

// SlotResponse ответ с данными определения слота
type SlotResponse struct {
	ID           int64     `json:"id"`
	PlaygroundID int64     `json:"playgroundId"`
	DayOfWeek    string    `json:"dayOfWeek"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Kind         string    `json:"kind"`
	Price        *string   `json:"price,omitempty"`
	Currency     string    `json:"currency"`
	MaxBookings  int       `json:"maxBookings"`
	Active       bool      `json:"active"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком определений слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.SlotDefinition) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:           s.ID,
		PlaygroundID: s.PlaygroundID,
		DayOfWeek:    string(s.DayOfWeek),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		Kind:         string(s.Kind),
		Currency:     s.Currency,
		MaxBookings:  s.MaxBookings,
		Active:       s.Active,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	if s.Price != nil {
		price := s.Price.StringFixed(domain.MoneyScale)
		resp.Price = &price
	}

	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.SlotDefinition) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		if slotResp := FromDomainSlot(s); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}
	return resp
}
