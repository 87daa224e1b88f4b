package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor              domain.Actor
	CancellationReason *string
}

// UpdateStatusRequest запрос на перевод бронирования владельцем площадки
type UpdateStatusRequest struct {
	Actor  domain.Actor
	Status string
}

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	Actor  domain.Actor
	UserID int64
	Status *string
}

// GetPlaygroundBookingsRequest запрос на получение бронирований площадки
type GetPlaygroundBookingsRequest struct {
	Actor           domain.Actor
	PlaygroundID    int64
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить завершенные и отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPlaygroundBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		PlaygroundID:    &r.PlaygroundID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явный фильтр по терминальному статусу включает неактивные бронирования
		if !status.IsOccupying() {
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования. Денежные суммы в виде строк с двумя знаками.
type BookingResponse struct {
	ID            string `json:"id"`
	PlaygroundID  int64  `json:"playgroundId"`
	CustomerID    int64  `json:"customerId"`
	BookingDate   string `json:"bookingDate"` // "2025-10-15"
	StartTime     string `json:"startTime"`   // "10:00"
	EndTime       string `json:"endTime"`     // "11:30"
	DurationHours string `json:"durationHours"`
	Status        string `json:"status"`

	PaymentStatus     string  `json:"paymentStatus"`
	PaymentMethod     string  `json:"paymentMethod"`
	PaymentReceiptRef *string `json:"paymentReceiptRef,omitempty"`

	PricePerHour   string `json:"pricePerHour"`
	TotalAmount    string `json:"totalAmount"`
	DiscountAmount string `json:"discountAmount"`
	AmenityFees    string `json:"amenityFees"`
	FinalAmount    string `json:"finalAmount"`
	Currency       string `json:"currency"`
	RefundAmount   string `json:"refundAmount"`
	RefundStatus   string `json:"refundStatus"`

	SelectedAmenities []string `json:"selectedAmenities"`
	SlotDefinitionID  *int64   `json:"slotDefinitionId,omitempty"`
	SlotKind          *string  `json:"slotKind,omitempty"`
	CouponCode        *string  `json:"couponCode,omitempty"`

	NumberOfPlayers    int     `json:"numberOfPlayers"`
	SpecialRequests    *string `json:"specialRequests,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	CancelledAt *string `json:"cancelledAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelBookingResponse результат отмены с рассчитанным возвратом
type CancelBookingResponse struct {
	Booking      *BookingResponse `json:"booking"`
	Status       string           `json:"status"`
	RefundAmount string           `json:"refundAmount"`
	RefundStatus string           `json:"refundStatus"`
}

// Методы конвертации

// FormatMoney форматирует сумму с двумя знаками после запятой
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyScale)
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	amenities := b.SelectedAmenities
	if amenities == nil {
		amenities = []string{}
	}

	resp := &BookingResponse{
		ID:                 b.ID.String(),
		PlaygroundID:       b.PlaygroundID,
		CustomerID:         b.CustomerID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationHours:      FormatMoney(b.DurationHours),
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      string(b.PaymentMethod),
		PaymentReceiptRef:  b.PaymentReceiptRef,
		PricePerHour:       FormatMoney(b.PricePerHour),
		TotalAmount:        FormatMoney(b.TotalAmount),
		DiscountAmount:     FormatMoney(b.DiscountAmount),
		AmenityFees:        FormatMoney(b.AmenityFees),
		FinalAmount:        FormatMoney(b.FinalAmount),
		Currency:           b.Currency,
		RefundAmount:       FormatMoney(b.RefundAmount),
		RefundStatus:       string(b.RefundStatus),
		SelectedAmenities:  amenities,
		SlotDefinitionID:   b.SlotDefinitionID,
		CouponCode:         b.CouponCode,
		NumberOfPlayers:    b.NumberOfPlayers,
		SpecialRequests:    b.SpecialRequests,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        formatTimestamp(b.ConfirmedAt),
		CancelledAt:        formatTimestamp(b.CancelledAt),
		CompletedAt:        formatTimestamp(b.CompletedAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.SlotKind != nil {
		kind := string(*b.SlotKind)
		resp.SlotKind = &kind
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// formatTimestamp конвертирует время в строку ISO 8601
func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
