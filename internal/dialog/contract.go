package dialog

import (
	"context"
	"time"

	"github.com/werybos/barbershop-bot/internal/domain"
	create "github.com/werybos/barbershop-bot/internal/usecase/create_appointment"
	slots "github.com/werybos/barbershop-bot/internal/usecase/get_available_slots"
)

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	ListActive(ctx context.Context) ([]*domain.Barber, error)
}

// ServiceRepository интерфейс репозитория услуг и категорий
type ServiceRepository interface {
	List(ctx context.Context, categoryID *int64) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// AvailabilityProvider интерфейс получения сетки слотов
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *slots.Request) (*slots.Response, error)
}

// AppointmentCreator интерфейс коммита записи
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create.Request) (*create.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс счетчиков диалога. Реализация может отсутствовать
type Metrics interface {
	IncDialogueTurn(state string)
	IncBookingCreated()
	IncBookingConflict()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) IncDialogueTurn(string) {}
func (noopMetrics) IncBookingCreated()     {}
func (noopMetrics) IncBookingConflict()    {}
