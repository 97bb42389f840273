package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werybos/barbershop-bot/internal/domain"
	appointmentsRepo "github.com/werybos/barbershop-bot/internal/infra/storage/appointments"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
)

type fakeAppointmentRepo struct {
	created *domain.Appointment
	err     error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *appt
	created.ID = 42
	f.created = &created
	return &created, nil
}

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

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validRequest() *Request {
	return &Request{
		UserID:      "100500",
		ClientName:  "Иван",
		ClientPhone: "+7 (999) 123-45-67",
		BarberID:    1,
		ServiceID:   2,
		Date:        time.Date(2025, 7, 26, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
	}
}

func newTestUseCase(appts *fakeAppointmentRepo) *UseCase {
	return NewUseCase(
		appts,
		&fakeBarberRepo{barber: &domain.Barber{ID: 1, Name: "Алексей"}},
		&fakeServiceRepo{service: &domain.Service{ID: 2, Name: "Стрижка", Price: 1500, DurationMinutes: 60}},
		nopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	uc := newTestUseCase(appts)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Алексей", resp.BarberName)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500, resp.Price)
	assert.Equal(t, "+79991234567", resp.ClientPhone)

	require.NotNil(t, appts.created)
	assert.Equal(t, domain.StatusPending, appts.created.Status)
	assert.Equal(t, "+79991234567", appts.created.ClientPhone)
}

func TestExecute_InvalidPhone(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	uc := newTestUseCase(appts)

	for _, phone := range []string{"89991234567", "+7999", "кот", ""} {
		req := validRequest()
		req.ClientPhone = phone
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPhone, "phone %q", phone)
	}
	assert.Nil(t, appts.created, "no insert on invalid phone")
}

func TestExecute_SlotTakenMapsToSlotNotAvailable(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{err: appointmentsRepo.ErrSlotTaken})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BarberGone(t *testing.T) {
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeBarberRepo{err: barbersRepo.ErrBarberNotFound},
		&fakeServiceRepo{service: &domain.Service{ID: 2}},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_StoreFailure(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{err: errors.New("connection refused")})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	cases := map[string]func(*Request){
		"empty user":   func(r *Request) { r.UserID = "" },
		"blank name":   func(r *Request) { r.ClientName = "   " },
		"zero barber":  func(r *Request) { r.BarberID = 0 },
		"zero service": func(r *Request) { r.ServiceID = 0 },
		"zero date":    func(r *Request) { r.Date = time.Time{} },
		"empty time":   func(r *Request) { r.Time = "" },
		"bad time":     func(r *Request) { r.Time = "25:99" },
	}
	for name, mutate := range cases {
		req := validRequest()
		mutate(req)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
}
