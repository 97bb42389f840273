package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/werybos/barbershop-bot/internal/dialog"
)

// Bot telegram-канал бота: long polling, маршрутизация нажатий и текста
// к диалоговому движку, клиентскому меню и админской панели
type Bot struct {
	api      *tgbotapi.BotAPI
	engine   DialogEngine
	exporter Exporter

	canceller   AppointmentCanceller
	completer   AppointmentCompleter
	archiver    Archiver
	reviewAdder ReviewAdder
	reviewRepo  ReviewRepository

	barberRepo      BarberRepository
	serviceRepo     ServiceRepository
	appointmentRepo AppointmentRepository

	adminIDs map[int64]struct{}
	pending  *pendingStore
	metrics  Metrics
	logger   Logger
}

// Deps зависимости бота
type Deps struct {
	Engine          DialogEngine
	Exporter        Exporter
	Canceller       AppointmentCanceller
	Completer       AppointmentCompleter
	Archiver        Archiver
	ReviewAdder     ReviewAdder
	ReviewRepo      ReviewRepository
	BarberRepo      BarberRepository
	ServiceRepo     ServiceRepository
	AppointmentRepo AppointmentRepository
	AdminIDs        []int64
	Metrics         Metrics
	Logger          Logger
}

// NewBot создает бота поверх готового API-клиента
func NewBot(api *tgbotapi.BotAPI, deps Deps) *Bot {
	admins := make(map[int64]struct{}, len(deps.AdminIDs))
	for _, id := range deps.AdminIDs {
		admins[id] = struct{}{}
	}
	return &Bot{
		api:             api,
		engine:          deps.Engine,
		exporter:        deps.Exporter,
		canceller:       deps.Canceller,
		completer:       deps.Completer,
		archiver:        deps.Archiver,
		reviewAdder:     deps.ReviewAdder,
		reviewRepo:      deps.ReviewRepo,
		barberRepo:      deps.BarberRepo,
		serviceRepo:     deps.ServiceRepo,
		appointmentRepo: deps.AppointmentRepo,
		adminIDs:        admins,
		pending:         newPendingStore(),
		metrics:         deps.Metrics,
		logger:          deps.Logger,
	}
}

// Run запускает long polling и блокируется до отмены контекста
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram: bot started, account=%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram: bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.pending.Clear(userID)
			b.engine.Cancel(userIDString(userID))
			b.sendStartMenu(chatID, userID)
		case "admin":
			b.sendAdminMenu(chatID, userID)
		}
		return
	}

	// Многошаговые вводы (админские сценарии, комментарий к отзыву)
	// имеют приоритет над диалогом бронирования
	if input, ok := b.pending.Take(userID); ok {
		b.handlePendingInput(ctx, msg, input)
		return
	}

	prompt, handled, err := b.engine.HandleText(ctx, userIDString(userID), msg.Text)
	if err != nil {
		b.logger.Error("telegram: dialogue text failed, user=%d: %v", userID, err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_start"))
		return
	}
	if handled {
		b.sendPrompt(ctx, chatID, userID, prompt)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("telegram: failed to answer callback: %v", err)
	}
	if query.Message == nil {
		return
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID
	data := query.Data

	b.logger.Debug("telegram: callback %q from user=%d", data, userID)

	switch {
	case data == "back_to_start":
		b.pending.Clear(userID)
		b.engine.Cancel(userIDString(userID))
		b.sendStartMenu(chatID, userID)

	case data == "book_appointment":
		b.startBooking(ctx, chatID, userID)

	case strings.HasPrefix(data, "barber_"):
		b.route(ctx, chatID, userID, data, "barber_", b.engine.SelectBarber)

	case strings.HasPrefix(data, "date_"):
		prompt, err := b.engine.SelectDate(ctx, userIDString(userID), data)
		b.renderDialogStep(ctx, chatID, userID, prompt, err)

	case data == "time_booked" || strings.HasPrefix(data, "time_"):
		prompt, err := b.engine.SelectTime(ctx, userIDString(userID), data)
		b.renderDialogStep(ctx, chatID, userID, prompt, err)

	case strings.HasPrefix(data, "category_"):
		b.route(ctx, chatID, userID, data, "category_", b.engine.SelectCategory)

	case strings.HasPrefix(data, "service_category_"):
		b.adminServiceCategory(chatID, userID, data)

	case strings.HasPrefix(data, "service_"):
		b.route(ctx, chatID, userID, data, "service_", b.engine.SelectService)

	case data == "my_appointments":
		b.sendMyAppointments(ctx, chatID, userID)

	case strings.HasPrefix(data, "cancel_"):
		b.cancelAppointment(ctx, chatID, userID, data)

	case data == "working_hours":
		b.sendWorkingHours(ctx, chatID)

	case data == "rate_barber":
		b.sendRateBarberList(ctx, chatID)

	case strings.HasPrefix(data, "rate_barber_"):
		b.sendRatingButtons(ctx, chatID, data)

	case strings.HasPrefix(data, "rating_"):
		b.handleRatingChoice(chatID, userID, data)

	case data == "about_us":
		b.send(chatID, msgAboutUs, backKeyboard("back_to_start"))

	case data == "support_info":
		b.send(chatID, msgSupport, backKeyboard("back_to_start"))

	default:
		b.handleAdminCallback(ctx, chatID, userID, data)
	}
}

// route разбирает числовой суффикс callback-данных и вызывает шаг движка
func (b *Bot) route(
	ctx context.Context,
	chatID, userID int64,
	data, prefix string,
	step func(ctx context.Context, userID string, id int64) (*dialog.Prompt, error),
) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}
	prompt, err := step(ctx, userIDString(userID), id)
	b.renderDialogStep(ctx, chatID, userID, prompt, err)
}

func (b *Bot) renderDialogStep(ctx context.Context, chatID, userID int64, prompt *dialog.Prompt, err error) {
	switch {
	case err == nil:
		b.sendPrompt(ctx, chatID, userID, prompt)
	case errors.Is(err, dialog.ErrSessionNotFound):
		// Сессия истекла или диалог не начат: возвращаем в главное меню
		b.sendStartMenu(chatID, userID)
	case errors.Is(err, dialog.ErrNoBarbers):
		b.send(chatID, msgNoBarbers, backKeyboard("back_to_start"))
	default:
		b.logger.Error("telegram: dialogue step failed, user=%d: %v", userID, err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_start"))
	}
}

// sendPrompt отправляет шаг диалога. Завершающий шаг сопровождается
// выгрузкой записей клиента, как подтверждение с документом
func (b *Bot) sendPrompt(ctx context.Context, chatID, userID int64, prompt *dialog.Prompt) {
	b.send(chatID, prompt.Text, promptKeyboard(prompt, "back_to_start"))

	if prompt.Done {
		b.sendAppointmentsFile(ctx, chatID, userIDString(userID), captionMyAppointments)
	}
}

func (b *Bot) sendAppointmentsFile(ctx context.Context, chatID int64, userID, caption string) {
	var filter *string
	if userID != "" {
		filter = &userID
	}
	data, err := b.exporter.Execute(ctx, filter)
	if err != nil {
		b.logger.Error("telegram: export failed, user=%s: %v", userID, err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "appointments.xlsx", Bytes: data})
	doc.Caption = caption
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("telegram: failed to send document: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("telegram: failed to send message to chat=%d: %v", chatID, err)
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	_, ok := b.adminIDs[userID]
	return ok
}

func userIDString(id int64) string {
	return fmt.Sprintf("%d", id)
}
