package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/booking"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

const (
	customerID = int64(100)
	ownerID    = int64(200)
	strangerID = int64(300)
	playground = int64(1)
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookings    map[uuid.UUID]*domain.Booking
	transitions []bookingRepo.StatusChange
	// forceChanged имитирует проигранный compare-and-set
	forceChanged bool
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[uuid.UUID]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByCustomerID(_ context.Context, id int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.CustomerID == id && (status == nil || b.Status == *status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if filter.PlaygroundID != nil && b.PlaygroundID != *filter.PlaygroundID {
			continue
		}
		if !filter.IncludeInactive && !b.IsOccupying() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) Transition(_ context.Context, id uuid.UUID, change bookingRepo.StatusChange) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if r.forceChanged || b.Status != change.From {
		return bookingRepo.ErrStatusChanged
	}
	r.transitions = append(r.transitions, change)
	b.Status = change.To
	return nil
}

type fakePlaygrounds struct{}

func (fakePlaygrounds) GetPlayground(_ context.Context, id int64) (*domain.Playground, error) {
	if id != playground {
		return nil, playgroundClient.ErrPlaygroundNotFound
	}
	return &domain.Playground{ID: id, OwnerID: ownerID}, nil
}

type fakeNotifier struct {
	events []events.BookingEvent
}

func (n *fakeNotifier) Notify(_ context.Context, event events.BookingEvent) {
	n.events = append(n.events, event)
}

type fakeMetrics struct {
	transitions []string
}

func (m *fakeMetrics) BookingTransition(to string) {
	m.transitions = append(m.transitions, to)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	repo     *fakeBookingRepo
	notifier *fakeNotifier
	metrics  *fakeMetrics
}

func newFixture(bookings ...*domain.Booking) *fixture {
	f := &fixture{
		repo:     newFakeBookingRepo(bookings...),
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
	}
	f.svc = NewService(f.repo, fakePlaygrounds{}, f.notifier, f.metrics, time.UTC, nopLogger{})
	f.svc.timeProvider = fixedClock{t: now}
	return f
}

// bookingStartingIn бронирование на час, начинающееся через d после now
func bookingStartingIn(d time.Duration, status domain.BookingStatus) *domain.Booking {
	start := now.Add(d)
	return &domain.Booking{
		ID:           uuid.New(),
		PlaygroundID: playground,
		CustomerID:   customerID,
		BookingDate:  time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:    types.NewTimeString(start),
		EndTime:      types.NewTimeString(start.Add(time.Hour)),
		Status:       status,
		FinalAmount:  decimal.NewFromInt(100),
		Currency:     "BDT",
		RefundStatus: domain.RefundNotApplicable,
	}
}

func customer() domain.Actor { return domain.Actor{UserID: customerID} }
func owner() domain.Actor    { return domain.Actor{UserID: ownerID} }

func TestCancel_RefundPolicy(t *testing.T) {
	tests := []struct {
		name       string
		startsIn   time.Duration
		wantRefund string
		wantStatus domain.RefundStatus
	}{
		{"50 hours before start refunds everything", 50 * time.Hour, "100.00", domain.RefundPending},
		{"exactly 48 hours refunds everything", 48 * time.Hour, "100.00", domain.RefundPending},
		{"30 hours before start refunds half", 30 * time.Hour, "50.00", domain.RefundPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := bookingStartingIn(tt.startsIn, domain.StatusConfirmed)
			f := newFixture(booking)

			resp, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{
				Actor:              customer(),
				CancellationReason: ptr.Ptr("plans changed"),
			})
			require.NoError(t, err)

			assert.Equal(t, "cancelled", resp.Status)
			assert.Equal(t, tt.wantRefund, resp.RefundAmount)
			assert.Equal(t, string(tt.wantStatus), resp.RefundStatus)
			assert.Equal(t, "plans changed", *resp.Booking.CancellationReason)
			assert.NotNil(t, resp.Booking.CancelledAt)

			require.Len(t, f.repo.transitions, 1)
			change := f.repo.transitions[0]
			assert.Equal(t, domain.StatusConfirmed, change.From)
			assert.Equal(t, domain.StatusCancelled, change.To)
			assert.Equal(t, tt.wantRefund, change.RefundAmount.StringFixed(2))

			require.Len(t, f.notifier.events, 1)
			assert.Equal(t, events.BookingCancelled, f.notifier.events[0].Type)
			assert.Equal(t, []string{"cancelled"}, f.metrics.transitions)
		})
	}
}

func TestCancel_TooLate(t *testing.T) {
	booking := bookingStartingIn(10*time.Hour, domain.StatusConfirmed)
	f := newFixture(booking)

	_, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{Actor: customer()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancellationWindowClosed)
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	assert.Contains(t, err.Error(), "10h")

	assert.Empty(t, f.repo.transitions)
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, domain.StatusConfirmed, f.repo.bookings[booking.ID].Status)
}

func TestCancel_TerminalStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			booking := bookingStartingIn(72*time.Hour, status)
			f := newFixture(booking)

			_, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{Actor: customer()})
			assert.ErrorIs(t, err, domain.ErrPolicyViolation)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestCancel_Access(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{"customer", customer(), nil},
		{"playground owner", owner(), nil},
		{"admin", domain.Actor{UserID: 999, IsAdmin: true}, nil},
		{"stranger", domain.Actor{UserID: strangerID}, domain.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := bookingStartingIn(72*time.Hour, domain.StatusPending)
			f := newFixture(booking)

			_, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{Actor: tt.actor})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCancel_NotFoundAndConcurrentUpdate(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Cancel(context.Background(), uuid.New(), &models.CancelBookingRequest{Actor: customer()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	booking := bookingStartingIn(72*time.Hour, domain.StatusConfirmed)
	f = newFixture(booking)
	f.repo.forceChanged = true

	_, err = f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{Actor: customer()})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.Empty(t, f.notifier.events)
}

func TestUpdateStatus_Confirm(t *testing.T) {
	booking := bookingStartingIn(72*time.Hour, domain.StatusPending)
	f := newFixture(booking)

	resp, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{
		Actor:  owner(),
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, events.BookingConfirmed, f.notifier.events[0].Type)

	// Повторное подтверждение запрещено
	_, err = f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{
		Actor:  owner(),
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestUpdateStatus_CustomerCannotConfirm(t *testing.T) {
	booking := bookingStartingIn(72*time.Hour, domain.StatusPending)
	f := newFixture(booking)

	_, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{
		Actor:  customer(),
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_CompleteAndNoShow(t *testing.T) {
	t.Run("complete after end", func(t *testing.T) {
		booking := bookingStartingIn(-3*time.Hour, domain.StatusConfirmed)
		f := newFixture(booking)

		resp, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Actor: owner(), Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.NotNil(t, resp.CompletedAt)
		assert.Equal(t, []string{"completed"}, f.metrics.transitions)
	})

	t.Run("complete before end", func(t *testing.T) {
		booking := bookingStartingIn(-30*time.Minute, domain.StatusConfirmed)
		f := newFixture(booking)

		_, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Actor: owner(), Status: "completed"})
		assert.ErrorIs(t, err, ErrBookingNotEnded)
		assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	})

	t.Run("no show only from confirmed", func(t *testing.T) {
		booking := bookingStartingIn(-3*time.Hour, domain.StatusPending)
		f := newFixture(booking)

		_, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Actor: owner(), Status: "no_show"})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	})

	t.Run("no show", func(t *testing.T) {
		booking := bookingStartingIn(-3*time.Hour, domain.StatusConfirmed)
		f := newFixture(booking)

		resp, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Actor: owner(), Status: "no_show"})
		require.NoError(t, err)
		assert.Equal(t, "no_show", resp.Status)
		require.Len(t, f.notifier.events, 1)
		assert.Equal(t, events.BookingNoShow, f.notifier.events[0].Type)
	})
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	booking := bookingStartingIn(72*time.Hour, domain.StatusPending)
	f := newFixture(booking)

	for _, status := range []string{"cancelled", "pending", "bogus"} {
		_, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Actor: owner(), Status: status})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, status)
	}
}

func TestGetByID_Access(t *testing.T) {
	booking := bookingStartingIn(72*time.Hour, domain.StatusPending)
	f := newFixture(booking)

	resp, err := f.svc.GetByID(context.Background(), booking.ID, customer())
	require.NoError(t, err)
	assert.Equal(t, booking.ID.String(), resp.ID)
	assert.Equal(t, "100.00", resp.FinalAmount)

	_, err = f.svc.GetByID(context.Background(), booking.ID, owner())
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), booking.ID, domain.Actor{UserID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings(t *testing.T) {
	f := newFixture(
		bookingStartingIn(72*time.Hour, domain.StatusPending),
		bookingStartingIn(96*time.Hour, domain.StatusCancelled),
	)

	resp, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{Actor: customer(), UserID: customerID})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  customer(),
		UserID: customerID,
		Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{Actor: owner(), UserID: customerID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  domain.Actor{UserID: 1, IsAdmin: true},
		UserID: customerID,
		Status: ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetPlaygroundBookings(t *testing.T) {
	f := newFixture(
		bookingStartingIn(72*time.Hour, domain.StatusPending),
		bookingStartingIn(96*time.Hour, domain.StatusCancelled),
	)

	resp, err := f.svc.GetPlaygroundBookings(context.Background(), &models.GetPlaygroundBookingsRequest{
		Actor:        owner(),
		PlaygroundID: playground,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = f.svc.GetPlaygroundBookings(context.Background(), &models.GetPlaygroundBookingsRequest{
		Actor:           owner(),
		PlaygroundID:    playground,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = f.svc.GetPlaygroundBookings(context.Background(), &models.GetPlaygroundBookingsRequest{
		Actor:        customer(),
		PlaygroundID: playground,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetPlaygroundBookings(context.Background(), &models.GetPlaygroundBookingsRequest{
		Actor:        owner(),
		PlaygroundID: 42,
	})
	assert.ErrorIs(t, err, ErrPlaygroundNotFound)
}
