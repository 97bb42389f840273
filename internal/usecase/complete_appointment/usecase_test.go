package complete_appointment

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
	err     error
	updated map[int64]domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if f.err != nil {
		return f.err
	}
	if f.updated == nil {
		f.updated = make(map[int64]domain.AppointmentStatus)
	}
	f.updated[id] = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_Completes(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updated[5])
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{err: appointmentsRepo.ErrAppointmentNotFound}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_StoreFailure(t *testing.T) {
	repo := &fakeAppointmentRepo{err: errors.New("connection refused")}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInternal)
}
