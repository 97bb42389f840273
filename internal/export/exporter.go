package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/werybos/barbershop-bot/internal/domain"
)

const sheetName = "Sheet1"

// FileName имя файла выгрузки, под которым он отправляется пользователю
const FileName = "appointments.xlsx"

var headers = []string{"ID", "Мастер", "Клиент", "Услуга", "Дата", "Время", "Цена (₽)", "Длительность (мин)"}

var monthNames = []string{
	"Января", "Февраля", "Марта", "Апреля", "Мая", "Июня",
	"Июля", "Августа", "Сентября", "Октября", "Ноября", "Декабря",
}

// Exporter выгрузка ожидающих записей в xlsx.
// Клиент получает только свои записи, администратор - все
type Exporter struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewExporter создает новый экспортер
func NewExporter(appointmentRepo AppointmentRepository, logger Logger) *Exporter {
	return &Exporter{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute формирует xlsx с ожидающими записями.
// userID = nil - административная выгрузка по всем клиентам.
// Без единой записи файл не формируется - ErrNoAppointments
func (e *Exporter) Execute(ctx context.Context, userID *string) ([]byte, error) {
	appointments, err := e.appointmentRepo.ListPendingDetails(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export: Execute - failed to list appointments: %w", err)
	}
	if len(appointments) == 0 {
		return nil, ErrNoAppointments
	}

	data, err := buildWorkbook(appointments)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute: %v", ErrBuildFile, err)
	}

	e.logger.Info("export: Execute - built file with %d appointments", len(appointments))
	return data, nil
}

func buildWorkbook(appointments []*domain.AppointmentDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for row, appt := range appointments {
		values := []interface{}{
			appt.ID,
			appt.BarberName,
			appt.ClientName,
			appt.ServiceName,
			formatDate(appt.Date),
			appt.Time.String(),
			appt.Price,
			appt.DurationMinutes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatDate дата в человекочитаемом виде, например "26 Июля"
func formatDate(d time.Time) string {
	return fmt.Sprintf("%d %s", d.Day(), monthNames[d.Month()-1])
}
