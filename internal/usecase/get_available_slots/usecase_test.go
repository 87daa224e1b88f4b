package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	playgroundClient "github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/playgroundservice"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/pricing"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/ptr"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// 2025-06-02 - понедельник
var (
	monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC)
)

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (r *fakeBookings) GetOccupyingByDate(_ context.Context, playgroundID int64, date time.Time) ([]*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.PlaygroundID == playgroundID && domain.SameDay(b.BookingDate, date) && b.IsOccupying() {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeSlots struct {
	slots []*domain.SlotDefinition
}

func (r *fakeSlots) GetByPlayground(_ context.Context, playgroundID int64, day *domain.DayOfWeek, activeOnly bool) ([]*domain.SlotDefinition, error) {
	var out []*domain.SlotDefinition
	for _, s := range r.slots {
		if s.PlaygroundID == playgroundID && (day == nil || s.DayOfWeek == *day) && (!activeOnly || s.Active) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakePlaygrounds struct {
	playground *domain.Playground
}

func (c *fakePlaygrounds) GetPlayground(_ context.Context, id int64) (*domain.Playground, error) {
	if c.playground == nil || c.playground.ID != id {
		return nil, playgroundClient.ErrPlaygroundNotFound
	}
	return c.playground, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testPlayground() *domain.Playground {
	return &domain.Playground{
		ID:           1,
		PricePerHour: decimal.NewFromInt(20),
		Currency:     "USD",
		OperatingHours: map[domain.DayOfWeek]domain.OperatingHours{
			domain.Monday:  {Open: "08:00", Close: "22:00", Active: true},
			domain.Tuesday: {Open: "08:00", Close: "22:00", Active: true},
			domain.Sunday:  {Open: "08:00", Close: "22:00", Active: false},
		},
	}
}

func slotDef(id int64, day domain.DayOfWeek, start, end string) *domain.SlotDefinition {
	return &domain.SlotDefinition{
		ID:           id,
		PlaygroundID: 1,
		DayOfWeek:    day,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Kind:         domain.SlotKindRegular,
		MaxBookings:  1,
		Active:       true,
	}
}

func booked(date time.Time, start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           uuid.New(),
		PlaygroundID: 1,
		BookingDate:  date,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Status:       status,
	}
}

func newUseCase(playground *domain.Playground, slots []*domain.SlotDefinition, bookings []*domain.Booking) *UseCase {
	uc := NewUseCase(
		&fakeBookings{bookings: bookings},
		&fakeSlots{slots: slots},
		&fakePlaygrounds{playground: playground},
		pricing.NewEngine(nopLogger{}),
		time.UTC,
		nopLogger{},
	)
	uc.timeProvider = fixedClock{t: now}
	return uc
}

func reasons(views []domain.SlotView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		if v.Reason == nil {
			out = append(out, "")
			continue
		}
		out = append(out, string(*v.Reason))
	}
	return out
}

func TestExecute_ClosedDay(t *testing.T) {
	sunday := monday.AddDate(0, 0, 6)
	uc := newUseCase(testPlayground(), []*domain.SlotDefinition{slotDef(1, domain.Sunday, "10:00", "11:00")}, nil)

	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: sunday})
	require.NoError(t, err)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonClosed, *resp.Reason)
	assert.Empty(t, resp.Slots)

	// день без записи в operating_hours тоже закрыт
	wednesday := monday.AddDate(0, 0, 2)
	resp, err = uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: wednesday})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonClosed, *resp.Reason)
}

func TestExecute_TodayMarksPastSlots(t *testing.T) {
	slots := []*domain.SlotDefinition{
		slotDef(1, domain.Monday, "09:00", "10:00"),
		slotDef(2, domain.Monday, "12:30", "13:30"),
		slotDef(3, domain.Monday, "14:00", "15:00"),
		slotDef(4, domain.Monday, "15:00", "16:00"),
	}
	bookings := []*domain.Booking{
		booked(monday, "14:00", "15:00", domain.StatusConfirmed),
		booked(monday, "15:00", "16:00", domain.StatusCancelled),
	}
	uc := newUseCase(testPlayground(), slots, bookings)

	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	// слот, начинающийся ровно сейчас, уже прошел; отмененное бронирование не занимает слот
	assert.Equal(t, []string{"past_time", "past_time", "booked", ""}, reasons(resp.Slots))
	assert.False(t, resp.Slots[2].IsAvailable)
	assert.Equal(t, 1, resp.Slots[2].Occupied)
	assert.True(t, resp.Slots[3].IsAvailable)
	assert.Equal(t, "20", resp.Slots[3].Price.String())
	assert.Equal(t, "USD", resp.Slots[3].Currency)
}

func TestExecute_OverlapCountsAsOccupied(t *testing.T) {
	// Бронирование 10:30-11:30 не совпадает ни с одним слотом, но пересекает оба
	slots := []*domain.SlotDefinition{
		slotDef(1, domain.Tuesday, "10:00", "11:00"),
		slotDef(2, domain.Tuesday, "11:00", "12:00"),
		slotDef(3, domain.Tuesday, "12:00", "13:00"),
	}
	tuesday := monday.AddDate(0, 0, 1)
	uc := newUseCase(testPlayground(), slots, []*domain.Booking{booked(tuesday, "10:30", "11:30", domain.StatusPending)})

	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, []string{"booked", "booked", ""}, reasons(resp.Slots))
}

func TestExecute_SkipsSlotsOutsideOperatingHours(t *testing.T) {
	// Часы 08:00-22:00: слоты до открытия и через закрытие забронировать нельзя
	slots := []*domain.SlotDefinition{
		slotDef(9, domain.Tuesday, "06:00", "07:00"),
		slotDef(10, domain.Tuesday, "10:00", "11:00"),
		slotDef(11, domain.Tuesday, "21:30", "22:30"),
		slotDef(12, domain.Tuesday, "21:00", "22:00"),
	}
	tuesday := monday.AddDate(0, 0, 1)
	uc := newUseCase(testPlayground(), slots, nil)

	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: tuesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, int64(10), resp.Slots[0].SlotDefinitionID)
	assert.Equal(t, int64(12), resp.Slots[1].SlotDefinitionID)
	assert.True(t, resp.Slots[0].IsAvailable)
	assert.True(t, resp.Slots[1].IsAvailable)
}

func TestExecute_MaxBookings(t *testing.T) {
	slot := slotDef(1, domain.Tuesday, "10:00", "11:00")
	slot.MaxBookings = 2
	tuesday := monday.AddDate(0, 0, 1)

	uc := newUseCase(testPlayground(), []*domain.SlotDefinition{slot}, []*domain.Booking{
		booked(tuesday, "10:00", "11:00", domain.StatusConfirmed),
	})
	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: tuesday})
	require.NoError(t, err)
	assert.True(t, resp.Slots[0].IsAvailable)
	assert.Equal(t, 1, resp.Slots[0].Occupied)
	assert.Equal(t, 2, resp.Slots[0].MaxBookings)
}

func TestExecute_TooFar(t *testing.T) {
	playground := testPlayground()
	playground.AdvanceBookingDays = 7

	slots := []*domain.SlotDefinition{slotDef(1, domain.Monday, "10:00", "11:00")}
	bookings := []*domain.Booking{booked(monday.AddDate(0, 0, 14), "10:00", "11:00", domain.StatusConfirmed)}
	uc := newUseCase(playground, slots, bookings)

	// через неделю - в пределах горизонта
	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: monday.AddDate(0, 0, 7)})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, reasons(resp.Slots))

	// через две недели - too_far важнее занятости
	resp, err = uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: monday.AddDate(0, 0, 14)})
	require.NoError(t, err)
	assert.Equal(t, []string{"too_far"}, reasons(resp.Slots))

	// без ограничения горизонта
	playground.AdvanceBookingDays = 0
	resp, err = uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: monday.AddDate(0, 0, 70)})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, reasons(resp.Slots))
}

func TestExecute_PastDate(t *testing.T) {
	uc := newUseCase(testPlayground(), []*domain.SlotDefinition{slotDef(1, domain.Monday, "20:00", "21:00")}, nil)

	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: monday.AddDate(0, 0, -7)})
	require.NoError(t, err)
	assert.Equal(t, []string{"past_time"}, reasons(resp.Slots))
}

func TestExecute_OrderingAndPricing(t *testing.T) {
	custom := slotDef(5, domain.Tuesday, "18:00", "20:00")
	custom.Kind = domain.SlotKindCustom
	custom.Price = ptr.Ptr(decimal.NewFromInt(75))

	slots := []*domain.SlotDefinition{
		custom,
		slotDef(3, domain.Tuesday, "09:00", "10:30"),
		slotDef(4, domain.Tuesday, "09:00", "10:00"),
		slotDef(6, domain.Monday, "09:00", "10:00"),
	}
	inactive := slotDef(7, domain.Tuesday, "07:00", "08:00")
	inactive.Active = false
	slots = append(slots, inactive)

	uc := newUseCase(testPlayground(), slots, nil)
	resp, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: monday.AddDate(0, 0, 1)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, int64(3), resp.Slots[0].SlotDefinitionID)
	assert.Equal(t, int64(4), resp.Slots[1].SlotDefinitionID)
	assert.Equal(t, int64(5), resp.Slots[2].SlotDefinitionID)

	assert.Equal(t, "30", resp.Slots[0].Price.String())
	assert.Equal(t, "75", resp.Slots[2].Price.String())
	assert.Equal(t, domain.SlotKindCustom, resp.Slots[2].Kind)
}

func TestExecute_Idempotent(t *testing.T) {
	slots := []*domain.SlotDefinition{
		slotDef(1, domain.Tuesday, "10:00", "11:00"),
		slotDef(2, domain.Tuesday, "11:00", "12:00"),
	}
	tuesday := monday.AddDate(0, 0, 1)
	uc := newUseCase(testPlayground(), slots, []*domain.Booking{booked(tuesday, "10:00", "11:00", domain.StatusConfirmed)})

	first, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: tuesday})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: tuesday})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(testPlayground(), nil, nil)

	_, err := uc.Execute(context.Background(), &Request{PlaygroundID: 0, Date: monday})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PlaygroundID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PlaygroundID: 2, Date: monday})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	uc = newUseCase(testPlayground(), []*domain.SlotDefinition{slotDef(1, domain.Monday, "20:00", "21:00")}, nil)
	uc.bookingRepo = &fakeBookings{err: errors.New("db down")}
	_, err = uc.Execute(context.Background(), &Request{PlaygroundID: 1, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}
