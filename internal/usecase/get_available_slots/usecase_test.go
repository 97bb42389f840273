package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werybos/barbershop-bot/internal/domain"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
)

type fakeBarberRepo struct {
	barber *domain.Barber
	err    error
}

func (f *fakeBarberRepo) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.barber, nil
}

type fakeAppointmentRepo struct {
	times []string
	err   error
}

func (f *fakeAppointmentRepo) ListPendingTimes(ctx context.Context, barberID int64, date time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.times, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testBarber(hours string) *domain.Barber {
	return &domain.Barber{
		ID:       1,
		Name:     "Алексей",
		IsActive: true,
		Schedule: domain.ScheduleDescriptor{Days: "Пн-Вс", Hours: hours},
	}
}

func testDate() time.Time {
	return time.Date(2025, 7, 26, 0, 0, 0, 0, time.UTC)
}

func TestExecute_AllSlotsFree(t *testing.T) {
	uc := NewUseCase(
		&fakeBarberRepo{barber: testBarber("09:00-18:00")},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate()})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 18)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Booked, "slot %s", slot.Time)
	}
	assert.True(t, resp.HasFree())
}

func TestExecute_BookedSlotAffectsOnlyItself(t *testing.T) {
	uc := NewUseCase(
		&fakeBarberRepo{barber: testBarber("09:00-11:00")},
		&fakeAppointmentRepo{times: []string{"10:00"}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate()})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	byTime := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byTime[slot.Time.String()] = slot.Booked
	}
	assert.False(t, byTime["09:00"])
	assert.False(t, byTime["09:30"])
	assert.True(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
}

func TestExecute_AllSlotsBooked(t *testing.T) {
	uc := NewUseCase(
		&fakeBarberRepo{barber: testBarber("09:00-10:00")},
		&fakeAppointmentRepo{times: []string{"09:00", "09:30"}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate()})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.False(t, resp.HasFree())
}

func TestExecute_UnknownBarberGivesEmptyGrid(t *testing.T) {
	uc := NewUseCase(
		&fakeBarberRepo{err: barbersRepo.ErrBarberNotFound},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 99, Date: testDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_EmptyScheduleGivesEmptyGrid(t *testing.T) {
	uc := NewUseCase(
		&fakeBarberRepo{barber: testBarber("18:00-09:00")},
		&fakeAppointmentRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_RepoFailure(t *testing.T) {
	uc := NewUseCase(
		&fakeBarberRepo{barber: testBarber("09:00-18:00")},
		&fakeAppointmentRepo{err: errors.New("connection refused")},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate()})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBarberRepo{}, &fakeAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BarberID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BarberID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
