package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	appointmentsRepo "github.com/werybos/barbershop-bot/internal/infra/storage/appointments"
)

// UseCase use case отмены записи клиентом
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

// Execute удаляет запись по инициативе клиента.
// Запись может отменить только оформивший ее пользователь
func (uc *UseCase) Execute(ctx context.Context, appointmentID int64, userID string) error {
	uc.logger.Info("CancelAppointment: id=%d, user=%s", appointmentID, userID)

	appt, err := uc.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentsRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if appt.UserID != userID {
		uc.logger.Warn("CancelAppointment: user=%s is not the owner of appointment id=%d", userID, appointmentID)
		return ErrAccessDenied
	}

	if err := uc.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentsRepo.ErrAppointmentNotFound) {
			// Запись успели заархивировать между чтением и удалением
			uc.logger.Warn("CancelAppointment: appointment id=%d disappeared before delete", appointmentID)
			return ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to delete appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled by user=%s", appointmentID, userID)
	return nil
}
