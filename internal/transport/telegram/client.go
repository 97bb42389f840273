package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/werybos/barbershop-bot/internal/domain"
	cancel "github.com/werybos/barbershop-bot/internal/usecase/cancel_appointment"
)

func (b *Bot) sendStartMenu(chatID, userID int64) {
	markup := keyboard(
		row(
			button("📅 Записаться на стрижку", "book_appointment"),
			button("📋 Мои записи", "my_appointments"),
		),
		row(
			button("🕒 Часы работы", "working_hours"),
			button("⭐ Оценить мастера", "rate_barber"),
		),
		row(
			button("ℹ️ О нас", "about_us"),
			button("💬 Поддержка", "support_info"),
		),
	)
	b.send(chatID, msgWelcome, markup)

	if b.isAdmin(userID) {
		b.send(chatID, msgAdminHint, nil)
	}
}

func (b *Bot) startBooking(ctx context.Context, chatID, userID int64) {
	prompt, err := b.engine.Start(ctx, userIDString(userID))
	b.renderDialogStep(ctx, chatID, userID, prompt, err)
}

// sendMyAppointments список активных записей клиента с кнопками отмены
func (b *Bot) sendMyAppointments(ctx context.Context, chatID, userID int64) {
	uid := userIDString(userID)
	appointments, err := b.appointmentRepo.ListPendingDetails(ctx, &uid)
	if err != nil {
		b.logger.Error("telegram: failed to list appointments, user=%d: %v", userID, err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_start"))
		return
	}
	if len(appointments) == 0 {
		b.send(chatID, msgNoAppointments, backKeyboard("back_to_start"))
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 *Ваши записи:*\n\n")

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(appointments)+1)
	for _, appt := range appointments {
		sb.WriteString(formatAppointmentLine(appt))
		rows = append(rows, row(button(
			fmt.Sprintf("❌ Отменить %s %s", appt.Date.Format(domain.DateFormat), appt.Time),
			fmt.Sprintf("cancel_%d", appt.ID),
		)))
	}
	rows = append(rows, row(button(labelBack, "back_to_start")))

	b.send(chatID, sb.String(), keyboard(rows...))
	b.sendAppointmentsFile(ctx, chatID, uid, captionMyAppointments)
}

func (b *Bot) cancelAppointment(ctx context.Context, chatID, userID int64, data string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, "cancel_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}

	err = b.canceller.Execute(ctx, id, userIDString(userID))
	switch {
	case err == nil:
		b.send(chatID, msgCancelDone, backKeyboard("back_to_start"))
	case errors.Is(err, cancel.ErrAppointmentNotFound):
		b.send(chatID, msgAppointmentGone, backKeyboard("back_to_start"))
	case errors.Is(err, cancel.ErrAccessDenied):
		b.send(chatID, msgAccessDenied, backKeyboard("back_to_start"))
	default:
		b.logger.Error("telegram: cancel failed, id=%d user=%d: %v", id, userID, err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_start"))
	}
}

// sendWorkingHours графики работы всех активных мастеров
func (b *Bot) sendWorkingHours(ctx context.Context, chatID int64) {
	barbers, err := b.barberRepo.ListActive(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list barbers: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_start"))
		return
	}
	if len(barbers) == 0 {
		b.send(chatID, msgNoBarbers, backKeyboard("back_to_start"))
		return
	}

	var sb strings.Builder
	sb.WriteString("🕒 *Часы работы мастеров:*\n\n")
	for _, barber := range barbers {
		sb.WriteString(fmt.Sprintf("💇‍♂️ *%s:* %s %s\n", barber.Name, barber.Schedule.Days, barber.Schedule.Hours))
	}
	b.send(chatID, sb.String(), backKeyboard("back_to_start"))
}

func formatAppointmentLine(a *domain.AppointmentDetails) string {
	return fmt.Sprintf(
		"• *%s* у мастера %s\n  📅 %s %s, %d₽\n",
		a.ServiceName, a.BarberName,
		a.Date.Format(domain.DateFormat), a.Time, a.Price,
	)
}
