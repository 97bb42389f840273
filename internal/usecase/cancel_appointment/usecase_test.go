package cancel_appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werybos/barbershop-bot/internal/domain"
	appointmentsRepo "github.com/werybos/barbershop-bot/internal/infra/storage/appointments"
)

type fakeAppointmentRepo struct {
	appt      *domain.Appointment
	getErr    error
	deleteErr error
	deleted   []int64
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appt, nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_OwnerCancels(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: &domain.Appointment{ID: 5, UserID: "100500"}}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5, "100500")
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestExecute_ForeignAppointmentDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: &domain.Appointment{ID: 5, UserID: "100500"}}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5, "999")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{getErr: appointmentsRepo.ErrAppointmentNotFound}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5, "100500")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_GoneBeforeDelete(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appt:      &domain.Appointment{ID: 5, UserID: "100500"},
		deleteErr: appointmentsRepo.ErrAppointmentNotFound,
	}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5, "100500")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_StoreFailure(t *testing.T) {
	repo := &fakeAppointmentRepo{getErr: errors.New("connection refused")}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5, "100500")
	assert.ErrorIs(t, err, ErrInternal)
}
