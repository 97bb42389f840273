package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/werybos/barbershop-bot/internal/domain"
	appointmentsRepo "github.com/werybos/barbershop-bot/internal/infra/storage/appointments"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
	servicesRepo "github.com/werybos/barbershop-bot/internal/infra/storage/services"
)

// UseCase use case создания записи - финальный коммит диалога бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	barberRepo      BarberRepository
	serviceRepo     ServiceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		barberRepo:      barberRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
	}
}

// Execute создает запись со статусом pending.
// Доступность слота перед вставкой повторно не проверяется: конфликт
// двух конкурирующих записей на один слот разрешает уникальный индекс в БД,
// проигравшая сторона получает ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%s, barber=%d, service=%d, date=%s, time=%s",
		req.UserID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализация телефона
	phone, err := domain.NormalizePhone(req.ClientPhone)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid phone for user=%s", req.UserID)
		return nil, ErrInvalidPhone
	}

	// 3. Мастер и услуга нужны для текста подтверждения
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barbersRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateAppointment: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Коммит
	appt := &domain.Appointment{
		UserID:      req.UserID,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientPhone: phone,
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Status:      domain.StatusPending,
	}

	created, err := uc.appointmentRepo.Create(ctx, appt)
	if err != nil {
		if errors.Is(err, appointmentsRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateAppointment: slot taken, barber=%d, date=%s, time=%s",
				req.BarberID, req.Date.Format(domain.DateFormat), req.Time)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", created.ID)

	return &Response{
		ID:          created.ID,
		BarberName:  barber.Name,
		ServiceName: service.Name,
		Price:       service.Price,
		Duration:    service.DurationMinutes,
		Date:        created.Date,
		Time:        created.Time,
		ClientName:  created.ClientName,
		ClientPhone: created.ClientPhone,
	}, nil
}
