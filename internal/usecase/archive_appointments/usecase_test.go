package archive_appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werybos/barbershop-bot/internal/domain"
	"github.com/werybos/barbershop-bot/pkg/types"
)

// fakeAppointmentRepo хранит записи в памяти и ведет себя как настоящий
// репозиторий в части выборки просроченных и переноса в архив
type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	archive      map[int64]*domain.Appointment
	insertErr    error
}

func newFakeRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{
		appointments: make(map[int64]*domain.Appointment),
		archive:      make(map[int64]*domain.Appointment),
	}
	for _, appt := range appointments {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (f *fakeAppointmentRepo) ListPendingBefore(ctx context.Context, date time.Time, t string) ([]*domain.Appointment, error) {
	var expired []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.Status != domain.StatusPending {
			continue
		}
		if appt.Date.Before(date) || (appt.Date.Equal(date) && appt.Time.String() < t) {
			expired = append(expired, appt)
		}
	}
	return expired, nil
}

func (f *fakeAppointmentRepo) InsertArchive(ctx context.Context, appt *domain.Appointment, archivedAt time.Time) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.archive[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error {
	delete(f.appointments, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingAppt(id int64, date time.Time, t string) *domain.Appointment {
	return &domain.Appointment{
		ID:     id,
		UserID: "100500",
		Date:   date,
		Time:   types.TimeString(t),
		Status: domain.StatusPending,
	}
}

func TestExecute_MovesExpired(t *testing.T) {
	now := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 7, 25, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 7, 26, 0, 0, 0, 0, time.UTC)

	repo := newFakeRepo(
		pendingAppt(1, yesterday, "10:00"), // вчерашняя - в архив
		pendingAppt(2, today, "09:00"),     // сегодня до текущего момента - в архив
		pendingAppt(3, today, "15:00"),     // сегодня позже - остается
	)

	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	moved, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	assert.Contains(t, repo.archive, int64(1))
	assert.Contains(t, repo.archive, int64(2))
	assert.NotContains(t, repo.appointments, int64(1))
	assert.NotContains(t, repo.appointments, int64(2))
	assert.Contains(t, repo.appointments, int64(3))
}

func TestExecute_Idempotent(t *testing.T) {
	now := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 7, 25, 0, 0, 0, 0, time.UTC)

	repo := newFakeRepo(pendingAppt(1, yesterday, "10:00"))
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	moved, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	// Повторная уборка ничего не находит
	moved, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
}

func TestExecute_NothingExpired(t *testing.T) {
	now := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 7, 27, 0, 0, 0, 0, time.UTC)

	repo := newFakeRepo(pendingAppt(1, tomorrow, "10:00"))
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	moved, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
	assert.Empty(t, repo.archive)
}

func TestExecute_InsertFailureStopsSweep(t *testing.T) {
	now := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 7, 25, 0, 0, 0, 0, time.UTC)

	repo := newFakeRepo(pendingAppt(1, yesterday, "10:00"))
	repo.insertErr = errors.New("connection refused")

	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	moved, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, moved)
	// Запись не потеряна
	assert.Contains(t, repo.appointments, int64(1))
}
