package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

type recordingSender struct {
	events []BookingEvent
	err    error
}

func (s *recordingSender) Publish(_ context.Context, event BookingEvent) error {
	s.events = append(s.events, event)
	return s.err
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:           uuid.MustParse("8f0c7c1e-1d2b-4f7a-9a57-0c2a4c3f9e11"),
		PlaygroundID: 7,
		CustomerID:   42,
		Status:       domain.StatusCancelled,
		BookingDate:  time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		StartTime:    "18:00",
		EndTime:      "19:30",
		FinalAmount:  decimal.RequireFromString("150"),
		RefundAmount: decimal.RequireFromString("75"),
		Currency:     "BDT",
	}
}

func TestNewBookingEvent(t *testing.T) {
	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.FixedZone("BST", 6*3600))

	event := NewBookingEvent(BookingCancelled, testBooking(), at)

	assert.Equal(t, BookingCancelled, event.Type)
	assert.Equal(t, "8f0c7c1e-1d2b-4f7a-9a57-0c2a4c3f9e11", event.BookingID)
	assert.Equal(t, "2026-04-02", event.Date)
	assert.Equal(t, "150.00", event.FinalAmount)
	assert.Equal(t, "75.00", event.RefundAmount)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
}

func TestTypeForStatus(t *testing.T) {
	eventType, ok := TypeForStatus(domain.StatusNoShow)
	assert.True(t, ok)
	assert.Equal(t, BookingNoShow, eventType)

	_, ok = TypeForStatus(domain.StatusPending)
	assert.False(t, ok)
}

func TestNotifier_SwallowsPublishErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("connection reset")}
	log := &recordingLogger{}
	n := NewNotifier(sender, log, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NotPanics(t, func() {
		n.Notify(ctx, NewBookingEvent(BookingCreated, testBooking(), time.Now()))
	})
	assert.Len(t, sender.events, 1)
	assert.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "connection reset")
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.Publish(context.Background(), BookingEvent{}))
	assert.NoError(t, p.Close())
}
