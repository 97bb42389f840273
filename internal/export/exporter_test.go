package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/werybos/barbershop-bot/internal/domain"
)

type fakeAppointmentRepo struct {
	details []*domain.AppointmentDetails
	gotUser *string
}

func (f *fakeAppointmentRepo) ListPendingDetails(ctx context.Context, userID *string) ([]*domain.AppointmentDetails, error) {
	f.gotUser = userID
	return f.details, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_BuildsWorkbook(t *testing.T) {
	repo := &fakeAppointmentRepo{details: []*domain.AppointmentDetails{
		{
			ID:              1,
			BarberName:      "Алексей",
			ClientName:      "Иван",
			ServiceName:     "Стрижка",
			Date:            time.Date(2025, 7, 26, 0, 0, 0, 0, time.UTC),
			Time:            "10:00",
			Price:           1500,
			DurationMinutes: 60,
		},
	}}
	exporter := NewExporter(repo, nopLogger{})

	userID := "100500"
	data, err := exporter.Execute(context.Background(), &userID)
	require.NoError(t, err)
	require.NotNil(t, repo.gotUser)
	assert.Equal(t, "100500", *repo.gotUser)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{"1", "Алексей", "Иван", "Стрижка", "26 Июля", "10:00", "1500", "60"}, rows[1])
}

func TestExecute_NoAppointments(t *testing.T) {
	exporter := NewExporter(&fakeAppointmentRepo{}, nopLogger{})

	_, err := exporter.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoAppointments)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1 Января", formatDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 Декабря", formatDate(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}
