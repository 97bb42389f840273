package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/werybos/barbershop-bot/internal/domain"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
)

// UseCase use case получения сетки слотов мастера на дату
type UseCase struct {
	barberRepo      BarberRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	barberRepo BarberRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		barberRepo:      barberRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute возвращает сетку слотов мастера на дату с признаком занятости.
// Неизвестный мастер, пустое или некорректное расписание - пустая сетка,
// а не ошибка: записываться не на что, диалог сам сообщит об этом клиенту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s", req.BarberID, req.Date.Format(domain.DateFormat))

	if req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	resp := &Response{BarberID: req.BarberID, Date: req.Date, Slots: []Slot{}}

	// 1. Получаем мастера и его расписание
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barbersRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 2. Генерируем сетку слотов из расписания
	slotTimes := domain.SlotTimes(barber.Schedule)
	if len(slotTimes) == 0 {
		uc.logger.Info("GetAvailableSlots: barber id=%d has empty schedule range", req.BarberID)
		return resp, nil
	}

	// 3. Получаем занятые времена на эту дату
	bookedTimes, err := uc.appointmentRepo.ListPendingTimes(ctx, req.BarberID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	// 4. Размечаем сетку. Слот занят только при точном совпадении времени:
	// запись не блокирует соседние слоты, какой бы длинной ни была услуга
	resp.Slots = make([]Slot, 0, len(slotTimes))
	for _, t := range slotTimes {
		_, isBooked := booked[t.String()]
		resp.Slots = append(resp.Slots, Slot{Time: t, Booked: isBooked})
	}

	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s, slots=%d, booked=%d",
		req.BarberID, req.Date.Format(domain.DateFormat), len(resp.Slots), len(booked))

	return resp, nil
}
