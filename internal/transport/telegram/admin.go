package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/werybos/barbershop-bot/internal/domain"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
	servicesRepo "github.com/werybos/barbershop-bot/internal/infra/storage/services"
	complete "github.com/werybos/barbershop-bot/internal/usecase/complete_appointment"
	"github.com/werybos/barbershop-bot/pkg/ptr"
)

func (b *Bot) sendAdminMenu(chatID, userID int64) {
	if !b.isAdmin(userID) {
		b.send(chatID, msgAccessDenied, nil)
		return
	}

	markup := keyboard(
		row(
			button("👤 Мастера", "admin_barbers"),
			button("✂️ Услуги", "admin_services"),
		),
		row(
			button("📅 Все записи", "admin_appointments"),
			button("✅ Завершить запись", "admin_complete"),
		),
		row(
			button("📢 Рассылка", "admin_broadcast"),
			button("📊 Статистика", "admin_stats"),
		),
		row(button(labelBack, "back_to_start")),
	)
	b.send(chatID, msgAdminMenu, markup)
}

func (b *Bot) handleAdminCallback(ctx context.Context, chatID, userID int64, data string) {
	if !b.isAdmin(userID) {
		b.logger.Warn("telegram: unauthorized admin callback %q from user=%d", data, userID)
		b.send(chatID, msgAccessDenied, nil)
		return
	}

	switch {
	case data == "back_to_admin":
		b.sendAdminMenu(chatID, userID)

	case data == "admin_barbers":
		b.sendAdminBarbers(ctx, chatID)

	case data == "add_barber":
		b.pending.Set(userID, &pendingInput{Kind: pendingBarberName})
		b.send(chatID, msgEnterBarberName, backKeyboard("admin_barbers"))

	case data == "delete_barber":
		b.sendBarberPicker(ctx, chatID, "delete_barber_", "❌ *Выберите мастера для удаления:*")

	case strings.HasPrefix(data, "delete_barber_"):
		b.deleteBarber(ctx, chatID, data)

	case data == "manage_schedule":
		b.sendBarberPicker(ctx, chatID, "manage_schedule_", "⚙️ *Выберите мастера для управления графиком:*")

	case strings.HasPrefix(data, "manage_schedule_"):
		b.promptSchedule(chatID, userID, data)

	case data == "admin_services":
		b.sendAdminServices(chatID)

	case data == "add_category":
		b.pending.Set(userID, &pendingInput{Kind: pendingCategoryName})
		b.send(chatID, msgEnterCategoryName, backKeyboard("admin_services"))

	case data == "delete_category":
		b.sendCategoryPicker(ctx, chatID)

	case strings.HasPrefix(data, "delete_category_"):
		b.deleteCategory(ctx, chatID, data)

	case data == "add_service":
		b.sendServiceCategoryPicker(ctx, chatID)

	case data == "delete_service":
		b.sendServicePicker(ctx, chatID)

	case strings.HasPrefix(data, "delete_service_"):
		b.deleteService(ctx, chatID, data)

	case data == "admin_appointments":
		b.sendAllAppointments(ctx, chatID)

	case data == "admin_complete":
		b.sendCompletePicker(ctx, chatID)

	case strings.HasPrefix(data, "complete_"):
		b.completeAppointment(ctx, chatID, data)

	case data == "admin_broadcast":
		b.pending.Set(userID, &pendingInput{Kind: pendingBroadcast})
		b.send(chatID, msgEnterBroadcast, backKeyboard("back_to_admin"))

	case data == "admin_stats":
		b.sendStats(ctx, chatID)

	default:
		b.logger.Debug("telegram: unknown callback %q", data)
	}
}

func (b *Bot) sendAdminBarbers(ctx context.Context, chatID int64) {
	barbers, err := b.barberRepo.ListAll(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list barbers: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_admin"))
		return
	}

	var sb strings.Builder
	sb.WriteString(msgAdminBarbers + "\n\n")
	for _, barber := range barbers {
		sb.WriteString(fmt.Sprintf("• %s (%s %s)", barber.Name, barber.Schedule.Days, barber.Schedule.Hours))
		if barber.RatingCount > 0 {
			sb.WriteString(fmt.Sprintf(" ⭐ %.1f", barber.Rating))
		}
		sb.WriteString("\n")
	}

	markup := keyboard(
		row(
			button("➕ Добавить мастера", "add_barber"),
			button("❌ Удалить мастера", "delete_barber"),
		),
		row(button("⚙️ График мастера", "manage_schedule")),
		row(button(labelBack, "back_to_admin")),
	)
	b.send(chatID, sb.String(), markup)
}

func (b *Bot) sendBarberPicker(ctx context.Context, chatID int64, prefix, header string) {
	barbers, err := b.barberRepo.ListAll(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list barbers: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("admin_barbers"))
		return
	}
	if len(barbers) == 0 {
		b.send(chatID, msgNoBarbersToManage, backKeyboard("admin_barbers"))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(barbers)+1)
	for _, barber := range barbers {
		rows = append(rows, row(button(barber.Name, fmt.Sprintf("%s%d", prefix, barber.ID))))
	}
	rows = append(rows, row(button(labelBack, "admin_barbers")))

	b.send(chatID, header, keyboard(rows...))
}

func (b *Bot) deleteBarber(ctx context.Context, chatID int64, data string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, "delete_barber_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}

	if err := b.barberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, barbersRepo.ErrBarberNotFound) {
			b.send(chatID, "❌ Мастер не найден.", backKeyboard("admin_barbers"))
			return
		}
		b.logger.Error("telegram: failed to delete barber id=%d: %v", id, err)
		b.send(chatID, msgInternalError, backKeyboard("admin_barbers"))
		return
	}
	b.send(chatID, "✅ *Мастер удалён.*", backKeyboard("admin_barbers"))
}

func (b *Bot) promptSchedule(chatID, userID int64, data string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, "manage_schedule_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}
	b.pending.Set(userID, &pendingInput{Kind: pendingSchedule, BarberID: id})
	b.send(chatID, msgEnterSchedule, backKeyboard("manage_schedule"))
}

func (b *Bot) sendAdminServices(chatID int64) {
	markup := keyboard(
		row(
			button("➕ Добавить категорию", "add_category"),
			button("❌ Удалить категорию", "delete_category"),
		),
		row(
			button("➕ Добавить услугу", "add_service"),
			button("❌ Удалить услугу", "delete_service"),
		),
		row(button(labelBack, "back_to_admin")),
	)
	b.send(chatID, msgAdminServices, markup)
}

func (b *Bot) sendCategoryPicker(ctx context.Context, chatID int64) {
	categories, err := b.serviceRepo.ListCategories(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list categories: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("admin_services"))
		return
	}
	if len(categories) == 0 {
		b.send(chatID, "😔 Нет категорий.", backKeyboard("admin_services"))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories)+1)
	for _, category := range categories {
		rows = append(rows, row(button(category.Name, fmt.Sprintf("delete_category_%d", category.ID))))
	}
	rows = append(rows, row(button(labelBack, "admin_services")))

	b.send(chatID, "❌ *Выберите категорию для удаления:*", keyboard(rows...))
}

func (b *Bot) deleteCategory(ctx context.Context, chatID int64, data string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, "delete_category_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}

	if err := b.serviceRepo.DeleteCategory(ctx, id); err != nil {
		b.logger.Error("telegram: failed to delete category id=%d: %v", id, err)
		b.send(chatID, msgInternalError, backKeyboard("admin_services"))
		return
	}
	b.send(chatID, "✅ *Категория удалена.*", backKeyboard("admin_services"))
}

// sendServiceCategoryPicker выбор категории для новой услуги.
// service_category_0 - услуга без категории
func (b *Bot) sendServiceCategoryPicker(ctx context.Context, chatID int64) {
	categories, err := b.serviceRepo.ListCategories(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list categories: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("admin_services"))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories)+2)
	for _, category := range categories {
		rows = append(rows, row(button(category.Name, fmt.Sprintf("service_category_%d", category.ID))))
	}
	rows = append(rows, row(button("Без категории", "service_category_0")))
	rows = append(rows, row(button(labelBack, "admin_services")))

	b.send(chatID, "📋 *Выберите категорию новой услуги:*", keyboard(rows...))
}

func (b *Bot) adminServiceCategory(chatID, userID int64, data string) {
	if !b.isAdmin(userID) {
		b.send(chatID, msgAccessDenied, nil)
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(data, "service_category_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}

	input := &pendingInput{Kind: pendingServiceData}
	if id != 0 {
		input.CategoryID = ptr.Ptr(id)
	}
	b.pending.Set(userID, input)
	b.send(chatID, msgEnterServiceData, backKeyboard("admin_services"))
}

func (b *Bot) sendServicePicker(ctx context.Context, chatID int64) {
	services, err := b.serviceRepo.List(ctx, nil)
	if err != nil {
		b.logger.Error("telegram: failed to list services: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("admin_services"))
		return
	}
	if len(services) == 0 {
		b.send(chatID, "😔 Нет услуг.", backKeyboard("admin_services"))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(services)+1)
	for _, svc := range services {
		rows = append(rows, row(button(
			fmt.Sprintf("%s (%d₽, %d мин)", svc.Name, svc.Price, svc.DurationMinutes),
			fmt.Sprintf("delete_service_%d", svc.ID),
		)))
	}
	rows = append(rows, row(button(labelBack, "admin_services")))

	b.send(chatID, "❌ *Выберите услугу для удаления:*", keyboard(rows...))
}

func (b *Bot) deleteService(ctx context.Context, chatID int64, data string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, "delete_service_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}

	if err := b.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			b.send(chatID, "❌ Услуга не найдена.", backKeyboard("admin_services"))
			return
		}
		b.logger.Error("telegram: failed to delete service id=%d: %v", id, err)
		b.send(chatID, msgInternalError, backKeyboard("admin_services"))
		return
	}
	b.send(chatID, "✅ *Услуга удалена.*", backKeyboard("admin_services"))
}

// sendCompletePicker список ожидающих записей с кнопками завершения
func (b *Bot) sendCompletePicker(ctx context.Context, chatID int64) {
	appointments, err := b.appointmentRepo.ListPendingDetails(ctx, nil)
	if err != nil {
		b.logger.Error("telegram: failed to list pending appointments: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_admin"))
		return
	}
	if len(appointments) == 0 {
		b.send(chatID, "😔 Нет ожидающих записей.", backKeyboard("back_to_admin"))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(appointments)+1)
	for _, appt := range appointments {
		rows = append(rows, row(button(
			fmt.Sprintf("%s %s - %s (%s)", appt.Date.Format(domain.DateFormat), appt.Time, appt.ClientName, appt.BarberName),
			fmt.Sprintf("complete_%d", appt.ID),
		)))
	}
	rows = append(rows, row(button(labelBack, "back_to_admin")))

	b.send(chatID, "✅ *Выберите запись для завершения:*", keyboard(rows...))
}

func (b *Bot) completeAppointment(ctx context.Context, chatID int64, data string) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, "complete_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}

	if err := b.completer.Execute(ctx, id); err != nil {
		if errors.Is(err, complete.ErrAppointmentNotFound) {
			b.send(chatID, msgAppointmentGone, backKeyboard("back_to_admin"))
			return
		}
		b.logger.Error("telegram: failed to complete appointment id=%d: %v", id, err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_admin"))
		return
	}
	b.send(chatID, "✅ *Запись отмечена выполненной.*", backKeyboard("back_to_admin"))
}

// sendAllAppointments архивирует прошедшие записи и выгружает актуальные
func (b *Bot) sendAllAppointments(ctx context.Context, chatID int64) {
	if moved, err := b.archiver.Execute(ctx); err != nil {
		b.logger.Error("telegram: archive sweep failed: %v", err)
	} else if moved > 0 {
		b.logger.Info("telegram: archived %d appointments before export", moved)
	}

	b.sendAppointmentsFile(ctx, chatID, "", captionAllAppointments)
}

func (b *Bot) sendStats(ctx context.Context, chatID int64) {
	pending, err := b.appointmentRepo.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		b.logger.Error("telegram: failed to count pending: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_admin"))
		return
	}
	completed, err := b.appointmentRepo.CountByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		b.logger.Error("telegram: failed to count completed: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_admin"))
		return
	}
	barbers, err := b.barberRepo.ListAll(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list barbers: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_admin"))
		return
	}

	active := 0
	ratingSum := 0.0
	rated := 0
	for _, barber := range barbers {
		if barber.IsActive {
			active++
		}
		if barber.RatingCount > 0 {
			ratingSum += barber.Rating
			rated++
		}
	}
	avgRating := 0.0
	if rated > 0 {
		avgRating = ratingSum / float64(rated)
	}

	text := fmt.Sprintf(
		"📊 *Статистика:*\n\n"+
			"👤 Активных мастеров: %d\n"+
			"📅 Ожидающих записей: %d\n"+
			"✅ Завершённых записей: %d\n"+
			"🌟 Средний рейтинг мастеров: %.2f",
		active, pending, completed, avgRating,
	)
	b.send(chatID, text, backKeyboard("back_to_admin"))
}

// handlePendingInput завершает многошаговый текстовый сценарий
func (b *Bot) handlePendingInput(ctx context.Context, msg *tgbotapi.Message, input *pendingInput) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	if input.Kind == pendingReviewComment {
		b.saveReview(ctx, chatID, input, msg.From.FirstName, msg.Text)
		return
	}

	if !b.isAdmin(userID) {
		b.send(chatID, msgAccessDenied, nil)
		return
	}

	switch input.Kind {
	case pendingBarberName:
		if text == "" {
			b.pending.Set(userID, input)
			b.send(chatID, msgEmptyBarberName, backKeyboard("admin_barbers"))
			return
		}
		b.pending.Set(userID, &pendingInput{Kind: pendingBarberTelegram, BarberName: text})
		b.send(chatID, fmt.Sprintf("✅ Имя мастера: *%s*\n%s", text, msgEnterTelegramID), backKeyboard("admin_barbers"))

	case pendingBarberTelegram:
		b.createBarber(ctx, chatID, userID, input, text)

	case pendingSchedule:
		b.updateSchedule(ctx, chatID, userID, input, text)

	case pendingCategoryName:
		b.createCategory(ctx, chatID, userID, input, text)

	case pendingServiceData:
		b.createService(ctx, chatID, userID, input, text)

	case pendingBroadcast:
		b.broadcast(ctx, chatID, text)
	}
}

func (b *Bot) createBarber(ctx context.Context, chatID, userID int64, input *pendingInput, telegramID string) {
	valid := isDigits(telegramID) || (strings.HasPrefix(telegramID, "@") && len(telegramID) > 1)
	if !valid {
		b.pending.Set(userID, input)
		b.send(chatID, msgBadTelegramID, backKeyboard("admin_barbers"))
		return
	}

	_, err := b.barberRepo.Create(ctx, &domain.Barber{
		Name:       input.BarberName,
		TelegramID: telegramID,
		IsActive:   true,
		Schedule:   domain.DefaultSchedule(),
	})
	if err != nil {
		if errors.Is(err, barbersRepo.ErrTelegramIDTaken) {
			b.pending.Set(userID, input)
			b.send(chatID, fmt.Sprintf("❌ *Ошибка:* Мастер с Telegram ID/username %s уже существует.", telegramID), backKeyboard("admin_barbers"))
			return
		}
		b.logger.Error("telegram: failed to create barber: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("admin_barbers"))
		return
	}

	b.send(chatID, fmt.Sprintf("✅ *Мастер %s добавлен с Telegram ID/username: %s.*", input.BarberName, telegramID), backKeyboard("admin_barbers"))
}

func (b *Bot) updateSchedule(ctx context.Context, chatID, userID int64, input *pendingInput, text string) {
	descriptor, ok := parseScheduleInput(text)
	if !ok {
		b.pending.Set(userID, input)
		b.send(chatID, msgBadSchedule, backKeyboard("manage_schedule"))
		return
	}

	if err := b.barberRepo.UpdateSchedule(ctx, input.BarberID, descriptor); err != nil {
		b.logger.Error("telegram: failed to update schedule for barber=%d: %v", input.BarberID, err)
		b.send(chatID, msgInternalError, backKeyboard("manage_schedule"))
		return
	}
	b.send(chatID, msgScheduleUpdated, backKeyboard("manage_schedule"))
}

func (b *Bot) createCategory(ctx context.Context, chatID, userID int64, input *pendingInput, text string) {
	if text == "" {
		b.pending.Set(userID, input)
		b.send(chatID, msgEnterCategoryName, backKeyboard("admin_services"))
		return
	}

	_, err := b.serviceRepo.CreateCategory(ctx, &domain.Category{Name: text})
	if err != nil {
		if errors.Is(err, servicesRepo.ErrCategoryNameTaken) {
			b.send(chatID, "❌ Категория с таким названием уже существует.", backKeyboard("admin_services"))
			return
		}
		b.logger.Error("telegram: failed to create category: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("admin_services"))
		return
	}
	b.send(chatID, "✅ *Категория добавлена.*", backKeyboard("admin_services"))
}

func (b *Bot) createService(ctx context.Context, chatID, userID int64, input *pendingInput, text string) {
	parts := strings.Split(text, ";")
	if len(parts) != 3 {
		b.pending.Set(userID, input)
		b.send(chatID, msgBadServiceData, backKeyboard("admin_services"))
		return
	}

	name := strings.TrimSpace(parts[0])
	price, err1 := strconv.Atoi(strings.TrimSpace(parts[1]))
	duration, err2 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if name == "" || err1 != nil || err2 != nil || price < 0 || duration <= 0 {
		b.pending.Set(userID, input)
		b.send(chatID, msgBadServiceData, backKeyboard("admin_services"))
		return
	}

	_, err := b.serviceRepo.Create(ctx, &domain.Service{
		CategoryID:      input.CategoryID,
		Name:            name,
		Price:           price,
		DurationMinutes: duration,
	})
	if err != nil {
		b.logger.Error("telegram: failed to create service: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("admin_services"))
		return
	}
	b.send(chatID, fmt.Sprintf("✅ *Услуга %s добавлена.*", name), backKeyboard("admin_services"))
}

// broadcast отправляет текст всем пользователям, когда-либо делавшим запись
func (b *Bot) broadcast(ctx context.Context, chatID int64, text string) {
	userIDs, err := b.appointmentRepo.DistinctUserIDs(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list broadcast recipients: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_admin"))
		return
	}

	sent := 0
	for _, uid := range userIDs {
		target, err := strconv.ParseInt(uid, 10, 64)
		if err != nil {
			continue
		}
		msg := tgbotapi.NewMessage(target, text)
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Warn("telegram: broadcast to %s failed: %v", uid, err)
			continue
		}
		sent++
	}

	b.send(chatID, fmt.Sprintf("📢 *Рассылка отправлена %d пользователям.*", sent), backKeyboard("back_to_admin"))
}

// parseScheduleInput разбирает ввод вида "Пн-Пт 09:00-18:00"
func parseScheduleInput(text string) (domain.ScheduleDescriptor, bool) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
	if len(parts) != 2 {
		return domain.ScheduleDescriptor{}, false
	}

	days := strings.TrimSpace(parts[0])
	hours := strings.TrimSpace(parts[1])
	if days == "" {
		return domain.ScheduleDescriptor{}, false
	}
	if r, err := domain.ParseHourRange(hours); err != nil || r.IsEmpty() {
		return domain.ScheduleDescriptor{}, false
	}

	return domain.ScheduleDescriptor{Days: days, Hours: hours}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
