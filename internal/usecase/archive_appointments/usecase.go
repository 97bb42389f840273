package archive_appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/werybos/barbershop-bot/internal/domain"
	"github.com/werybos/barbershop-bot/pkg/types"
)

// UseCase use case архивной уборки: переносит просроченные ожидающие записи
// из активной таблицы в архив
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит в архив все ожидающие записи со временем строго в прошлом
// относительно текущего момента и возвращает количество перенесенных.
//
// Перенос атомарен по каждой записи (insert + delete в одной транзакции),
// но не по всей уборке: упавшая на середине уборка доделается следующим
// запуском. Повторная уборка идемпотентна - просроченных pending записей
// после первой уборки не остается
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	currentTime := types.NewTimeString(now)

	uc.logger.Info("ArchiveAppointments: sweeping before %s %s", today.Format(domain.DateFormat), currentTime)

	expired, err := uc.appointmentRepo.ListPendingBefore(ctx, today, currentTime.String())
	if err != nil {
		uc.logger.Error("ArchiveAppointments: failed to list expired appointments: %v", err)
		return 0, fmt.Errorf("%w: failed to list expired appointments: %v", ErrInternal, err)
	}

	moved := 0
	for _, appt := range expired {
		appt := appt
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := uc.appointmentRepo.InsertArchive(txCtx, appt, now); err != nil {
				return err
			}
			return uc.appointmentRepo.Delete(txCtx, appt.ID)
		})
		if err != nil {
			uc.logger.Error("ArchiveAppointments: failed to move appointment id=%d: %v", appt.ID, err)
			return moved, fmt.Errorf("%w: failed to move appointment id=%d: %v", ErrInternal, appt.ID, err)
		}
		moved++
	}

	uc.logger.Info("ArchiveAppointments: moved %d appointments to archive", moved)
	return moved, nil
}
