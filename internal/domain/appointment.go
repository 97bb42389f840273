package domain

import (
	"time"

	"github.com/werybos/barbershop-bot/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment запись клиента к мастеру
type Appointment struct {
	ID          int64
	UserID      string // Telegram ID клиента, оформившего запись
	ClientName  string
	ClientPhone string // нормализованный: "+" и цифры
	BarberID    int64
	ServiceID   int64
	Date        time.Time // дата визита (без времени)
	Time        types.TimeString
	Status      AppointmentStatus
}

// IsPending возвращает true для активной (ожидающей) записи
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// ArchivedAppointment запись, перенесенная в архив
// Статус сохраняется тем, каким был на момент переноса
type ArchivedAppointment struct {
	Appointment
	ArchivedAt time.Time
}

// AppointmentDetails запись с денормализованными данными мастера и услуги
// Используется для списков "Мои записи" и выгрузки в Excel
type AppointmentDetails struct {
	ID              int64
	BarberName      string
	ClientName      string
	ServiceName     string
	Date            time.Time
	Time            types.TimeString
	Price           int
	DurationMinutes int
}
