package telegram

import (
	"context"

	"github.com/werybos/barbershop-bot/internal/dialog"
	"github.com/werybos/barbershop-bot/internal/domain"
	review "github.com/werybos/barbershop-bot/internal/usecase/add_review"
)

// DialogEngine интерфейс машины состояний диалога бронирования
type DialogEngine interface {
	Start(ctx context.Context, userID string) (*dialog.Prompt, error)
	SelectBarber(ctx context.Context, userID string, barberID int64) (*dialog.Prompt, error)
	SelectDate(ctx context.Context, userID, choice string) (*dialog.Prompt, error)
	SelectTime(ctx context.Context, userID, token string) (*dialog.Prompt, error)
	SelectCategory(ctx context.Context, userID string, categoryID int64) (*dialog.Prompt, error)
	SelectService(ctx context.Context, userID string, serviceID int64) (*dialog.Prompt, error)
	HandleText(ctx context.Context, userID, text string) (*dialog.Prompt, bool, error)
	Cancel(userID string)
}

// Exporter интерфейс выгрузки записей в xlsx
type Exporter interface {
	Execute(ctx context.Context, userID *string) ([]byte, error)
}

// AppointmentCanceller интерфейс отмены записи клиентом
type AppointmentCanceller interface {
	Execute(ctx context.Context, appointmentID int64, userID string) error
}

// AppointmentCompleter интерфейс завершения записи мастером
type AppointmentCompleter interface {
	Execute(ctx context.Context, appointmentID int64) error
}

// Archiver интерфейс переноса прошедших записей в архив
type Archiver interface {
	Execute(ctx context.Context) (int, error)
}

// ReviewAdder интерфейс добавления отзыва
type ReviewAdder interface {
	Execute(ctx context.Context, req *review.Request) (*domain.Review, error)
}

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error)
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*domain.Barber, error)
	ListActive(ctx context.Context) ([]*domain.Barber, error)
	ListAll(ctx context.Context) ([]*domain.Barber, error)
	UpdateSchedule(ctx context.Context, id int64, schedule domain.ScheduleDescriptor) error
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория услуг и категорий
type ServiceRepository interface {
	List(ctx context.Context, categoryID *int64) ([]*domain.Service, error)
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс чтения записей для меню и статистики
type AppointmentRepository interface {
	ListPendingDetails(ctx context.Context, userID *string) ([]*domain.AppointmentDetails, error)
	CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int, error)
	DistinctUserIDs(ctx context.Context) ([]string, error)
}

// ReviewRepository интерфейс чтения отзывов
type ReviewRepository interface {
	ListByBarber(ctx context.Context, barberID int64, limit uint64) ([]*domain.Review, error)
}

// Metrics интерфейс счетчиков событий канала. Реализация может отсутствовать
type Metrics interface {
	IncReviewAdded()
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
