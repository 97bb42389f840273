package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/werybos/barbershop-bot/internal/domain"
	appointmentsRepo "github.com/werybos/barbershop-bot/internal/infra/storage/appointments"
)

// UseCase use case завершения записи мастером
type UseCase struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute переводит ожидающую запись в статус completed.
// Если записи уже нет (заархивирована или удалена) - ErrAppointmentNotFound
func (uc *UseCase) Execute(ctx context.Context, appointmentID int64) error {
	uc.logger.Info("CompleteAppointment: id=%d", appointmentID)

	err := uc.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.StatusCompleted)
	if err != nil {
		if errors.Is(err, appointmentsRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CompleteAppointment: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		uc.logger.Error("CompleteAppointment: failed to update status for id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("CompleteAppointment: appointment id=%d completed", appointmentID)
	return nil
}
