package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/werybos/barbershop-bot/internal/domain"
	create "github.com/werybos/barbershop-bot/internal/usecase/create_appointment"
	slots "github.com/werybos/barbershop-bot/internal/usecase/get_available_slots"
	"github.com/werybos/barbershop-bot/pkg/types"
)

// Engine машина состояний диалога бронирования.
// Один экземпляр обслуживает всех пользователей; ходы разных пользователей
// независимы и разделяют только Store и нижележащее хранилище.
// Каждый метод соответствует одному событию от канала: нажатию кнопки или
// свободному тексту. Некорректный ввод не двигает диалог - пользователь
// получает корректирующий Prompt в том же состоянии
type Engine struct {
	store        *Store
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	availability AvailabilityProvider
	creator      AppointmentCreator
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewEngine создает новый движок диалога.
// timeProvider и metrics могут быть nil
func NewEngine(
	store *Store,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	availability AvailabilityProvider,
	creator AppointmentCreator,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Engine {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Engine{
		store:        store,
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		availability: availability,
		creator:      creator,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Start начинает диалог бронирования: новая сессия, список активных мастеров.
// Незавершенная сессия пользователя при этом отбрасывается.
// Без единого активного мастера диалог не начинается - ErrNoBarbers
func (e *Engine) Start(ctx context.Context, userID string) (*Prompt, error) {
	e.metrics.IncDialogueTurn(StateSelectBarber.String())

	barbers, err := e.barberRepo.ListActive(ctx)
	if err != nil {
		e.logger.Error("dialog: failed to list active barbers: %v", err)
		return nil, fmt.Errorf("%w: failed to list barbers: %v", ErrInternal, err)
	}
	if len(barbers) == 0 {
		e.logger.Warn("dialog: no active barbers, user=%s", userID)
		return nil, ErrNoBarbers
	}

	e.store.Put(&Session{UserID: userID, State: StateSelectBarber})

	options := make([][]Option, 0, len(barbers))
	for _, b := range barbers {
		options = append(options, []Option{{
			Token: fmt.Sprintf("barber_%d", b.ID),
			Label: b.Name,
		}})
	}

	return &Prompt{Text: msgSelectBarber, Options: options}, nil
}

// SelectBarber фиксирует мастера и предлагает выбрать день.
// Допустим из любого состояния активной сессии: кнопки "Назад" ведут сюда же
func (e *Engine) SelectBarber(ctx context.Context, userID string, barberID int64) (*Prompt, error) {
	session, ok := e.store.Get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.metrics.IncDialogueTurn(StateSelectDate.String())

	session.BarberID = barberID
	session.State = StateSelectDate
	e.store.Put(session)

	return &Prompt{
		Text: msgSelectDate,
		Options: [][]Option{
			{
				{Token: TokenDateToday, Label: labelToday},
				{Token: TokenDateTomorrow, Label: labelTomorrow},
			},
			{{Token: TokenDateOther, Label: labelOtherDates}},
		},
	}, nil
}

// SelectDate обрабатывает выбор дня кнопкой.
// today/tomorrow сразу ведут к выбору времени, other - к вводу даты текстом
func (e *Engine) SelectDate(ctx context.Context, userID, choice string) (*Prompt, error) {
	session, ok := e.store.Get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := e.timeProvider.Now()
	switch choice {
	case TokenDateToday:
		session.Date = dateOnly(now)
	case TokenDateTomorrow:
		session.Date = dateOnly(now.AddDate(0, 0, 1))
	case TokenDateOther:
		e.metrics.IncDialogueTurn(StateEnterDate.String())
		session.State = StateEnterDate
		e.store.Put(session)
		return &Prompt{Text: msgEnterDate, ExpectText: true}, nil
	default:
		return nil, fmt.Errorf("%w: unknown date choice %q", ErrUnexpectedInput, choice)
	}

	session.State = StateSelectTime
	e.store.Put(session)
	return e.timePrompt(ctx, session, msgSelectTime)
}

// SelectTime обрабатывает выбор слота.
// Нажатие на занятый слот - корректирующее сообщение в том же состоянии
func (e *Engine) SelectTime(ctx context.Context, userID, token string) (*Prompt, error) {
	session, ok := e.store.Get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if token == TokenTimeBooked {
		e.metrics.IncDialogueTurn(StateSelectTime.String())
		return e.timePrompt(ctx, session, msgSlotBooked)
	}

	t, err := types.NewTimeStringFromString(strings.TrimPrefix(token, "time_"))
	if err != nil {
		return nil, fmt.Errorf("%w: bad time token %q: %v", ErrUnexpectedInput, token, err)
	}

	session.Time = t
	session.State = StateSelectCategory
	e.store.Put(session)

	return e.servicePrompt(ctx, session)
}

// SelectCategory фиксирует категорию и предлагает ее услуги
func (e *Engine) SelectCategory(ctx context.Context, userID string, categoryID int64) (*Prompt, error) {
	session, ok := e.store.Get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.metrics.IncDialogueTurn(StateSelectService.String())

	session.CategoryID = &categoryID
	session.State = StateSelectService
	e.store.Put(session)

	services, err := e.serviceRepo.List(ctx, &categoryID)
	if err != nil {
		e.logger.Error("dialog: failed to list services for category=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}
	if len(services) == 0 {
		return &Prompt{Text: msgCategoryEmpty}, nil
	}

	return &Prompt{Text: msgSelectService, Options: serviceOptions(services)}, nil
}

// SelectService фиксирует услугу и запрашивает имя клиента
func (e *Engine) SelectService(ctx context.Context, userID string, serviceID int64) (*Prompt, error) {
	session, ok := e.store.Get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.metrics.IncDialogueTurn(StateEnterName.String())

	session.ServiceID = serviceID
	session.State = StateEnterName
	e.store.Put(session)

	return &Prompt{Text: msgEnterName, ExpectText: true}, nil
}

// HandleText обрабатывает свободный текст пользователя. Второе возвращаемое
// значение false означает, что диалог текста сейчас не ждет и сообщение
// следует игнорировать
func (e *Engine) HandleText(ctx context.Context, userID, text string) (*Prompt, bool, error) {
	session, ok := e.store.Get(userID)
	if !ok {
		return nil, false, nil
	}

	switch session.State {
	case StateEnterDate:
		prompt, err := e.handleDateText(ctx, session, text)
		return prompt, true, err
	case StateEnterName:
		prompt, err := e.handleNameText(ctx, session, text)
		return prompt, true, err
	case StateEnterPhone:
		prompt, err := e.handlePhoneText(ctx, session, text)
		return prompt, true, err
	default:
		return nil, false, nil
	}
}

// Cancel отменяет диалог и отбрасывает сессию, ничего не коммитя.
// Безопасен в любом состоянии, в том числе без активной сессии
func (e *Engine) Cancel(userID string) {
	e.store.Delete(userID)
}

func (e *Engine) handleDateText(ctx context.Context, session *Session, text string) (*Prompt, error) {
	e.metrics.IncDialogueTurn(StateEnterDate.String())

	date, err := time.Parse(domain.InputDateFormat, strings.TrimSpace(text))
	if err != nil {
		// Остаемся в том же состоянии, ждем повторного ввода
		return &Prompt{Text: msgInvalidDate, ExpectText: true}, nil
	}

	session.Date = date
	session.State = StateSelectTime
	e.store.Put(session)
	return e.timePrompt(ctx, session, msgSelectTime)
}

func (e *Engine) handleNameText(ctx context.Context, session *Session, text string) (*Prompt, error) {
	e.metrics.IncDialogueTurn(StateEnterName.String())

	name := strings.TrimSpace(text)
	if name == "" {
		return &Prompt{Text: msgEmptyName, ExpectText: true}, nil
	}

	session.ClientName = name
	session.State = StateEnterPhone
	e.store.Put(session)

	service, err := e.serviceRepo.GetByID(ctx, session.ServiceID)
	if err != nil {
		e.logger.Error("dialog: failed to get service id=%d: %v", session.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	text = fmt.Sprintf(
		"✂️ *Вы выбрали услугу:* %s (%d₽, %d мин)\n\n"+
			"👤 *Имя:* %s\n\n"+
			"📞 *Введите ваш номер телефона* для подтверждения записи (например, +79991234567):",
		service.Name, service.Price, service.DurationMinutes, name,
	)
	return &Prompt{Text: text, ExpectText: true}, nil
}

func (e *Engine) handlePhoneText(ctx context.Context, session *Session, text string) (*Prompt, error) {
	e.metrics.IncDialogueTurn(StateEnterPhone.String())

	resp, err := e.creator.Execute(ctx, &create.Request{
		UserID:      session.UserID,
		ClientName:  session.ClientName,
		ClientPhone: text,
		BarberID:    session.BarberID,
		ServiceID:   session.ServiceID,
		Date:        session.Date,
		Time:        session.Time,
	})
	switch {
	case err == nil:
		// Коммит прошел - сессия больше не нужна
		e.metrics.IncBookingCreated()
		e.store.Delete(session.UserID)
		return &Prompt{
			Text:        confirmationText(resp),
			Done:        true,
			Appointment: resp,
		}, nil

	case errors.Is(err, create.ErrInvalidPhone):
		return &Prompt{Text: msgInvalidPhone, ExpectText: true}, nil

	case errors.Is(err, create.ErrSlotNotAvailable):
		// Слот заняли, пока пользователь вводил данные: возвращаем диалог
		// к выбору времени со свежей сеткой
		e.metrics.IncBookingConflict()
		session.State = StateSelectTime
		e.store.Put(session)
		return e.timePrompt(ctx, session, msgSlotConflict)

	default:
		// Хранилище недоступно: сессию не трогаем, пользователь сможет
		// повторить ввод после восстановления
		e.logger.Error("dialog: commit failed for user=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: commit failed: %v", ErrInternal, err)
	}
}

// timePrompt строит клавиатуру слотов для выбранных мастера и даты
func (e *Engine) timePrompt(ctx context.Context, session *Session, header string) (*Prompt, error) {
	resp, err := e.availability.Execute(ctx, &slots.Request{
		BarberID: session.BarberID,
		Date:     session.Date,
	})
	if err != nil {
		e.logger.Error("dialog: failed to get slots for barber=%d: %v", session.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	if len(resp.Slots) == 0 {
		return &Prompt{Text: msgNoSlots}, nil
	}

	options := make([][]Option, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		if slot.Booked {
			options = append(options, []Option{{
				Token: TokenTimeBooked,
				Label: "❌ " + slot.Time.String(),
			}})
		} else {
			options = append(options, []Option{{
				Token: "time_" + slot.Time.String(),
				Label: "✅ " + slot.Time.String(),
			}})
		}
	}

	return &Prompt{Text: header, Options: options}, nil
}

// servicePrompt предлагает категории, а при их отсутствии - сразу услуги
func (e *Engine) servicePrompt(ctx context.Context, session *Session) (*Prompt, error) {
	e.metrics.IncDialogueTurn(StateSelectCategory.String())

	categories, err := e.serviceRepo.ListCategories(ctx)
	if err != nil {
		e.logger.Error("dialog: failed to list categories: %v", err)
		return nil, fmt.Errorf("%w: failed to list categories: %v", ErrInternal, err)
	}

	if len(categories) == 0 {
		session.State = StateSelectService
		e.store.Put(session)

		services, err := e.serviceRepo.List(ctx, nil)
		if err != nil {
			e.logger.Error("dialog: failed to list services: %v", err)
			return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
		}
		if len(services) == 0 {
			return &Prompt{Text: msgNoServices}, nil
		}
		return &Prompt{Text: msgSelectService, Options: serviceOptions(services)}, nil
	}

	options := make([][]Option, 0, len(categories))
	for _, c := range categories {
		options = append(options, []Option{{
			Token: fmt.Sprintf("category_%d", c.ID),
			Label: c.Name,
		}})
	}
	return &Prompt{Text: msgSelectCategory, Options: options}, nil
}

func serviceOptions(services []*domain.Service) [][]Option {
	options := make([][]Option, 0, len(services))
	for _, s := range services {
		options = append(options, []Option{{
			Token: fmt.Sprintf("service_%d", s.ID),
			Label: fmt.Sprintf("%s (%d₽, %d мин)", s.Name, s.Price, s.DurationMinutes),
		}})
	}
	return options
}

func confirmationText(resp *create.Response) string {
	return fmt.Sprintf(
		"🎉 *Запись подтверждена!*\n\n"+
			"👤 *Мастер:* %s\n"+
			"✂️ *Услуга:* %s (%d₽, %d мин)\n"+
			"📅 *Дата и время:* %s %s\n"+
			"👤 *Имя:* %s\n"+
			"📞 *Ваш номер:* %s\n\n"+
			"Спасибо, что выбрали нас! 😊",
		resp.BarberName,
		resp.ServiceName, resp.Price, resp.Duration,
		resp.Date.Format(domain.DateFormat), resp.Time,
		resp.ClientName,
		resp.ClientPhone,
	)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
