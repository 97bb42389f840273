package export

import (
	"context"

	"github.com/werybos/barbershop-bot/internal/domain"
)

// AppointmentRepository интерфейс чтения записей для выгрузки
type AppointmentRepository interface {
	ListPendingDetails(ctx context.Context, userID *string) ([]*domain.AppointmentDetails, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
