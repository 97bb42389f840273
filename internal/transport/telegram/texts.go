package telegram

// Тексты меню и служебных экранов
const (
	msgWelcome = "✂️ Добро пожаловать в наш барбершоп! 💈\n" +
		"Мы создадим для вас идеальный стиль!\n" +
		"Выберите действие:"

	msgAdminHint = "👑 *Вы администратор!* Введите /admin для доступа к панели управления."

	msgAboutUs = "💈 *О нашем барбершопе* 💈\n\n" +
		"Мы - команда профессионалов, которые любят своё дело! " +
		"Создаём стильные стрижки и комфортную атмосферу. " +
		"Приходите, чтобы почувствовать себя на высоте! 😊\n\n" +
		"📍 Адрес: ул. Примерная, д. 10\n" +
		"📞 Телефон: +79991234567\n\n" +
		"💬 Техническая поддержка и разработка: @werybos\n" +
		"🌐 Поддержка: Русский, English"

	msgSupport = "💬 *Техническая поддержка и разработка* 💬\n\n" +
		"📞 Связь с разработчиком: @werybos\n" +
		"🌐 Поддерживаемые языки: Русский, English\n\n" +
		"⚡ Быстрый отклик и профессиональный подход!"

	msgNoBarbers         = "❌ *Нет доступных мастеров.* Обратитесь к администратору."
	msgNoAppointments    = "😔 У вас нет активных записей."
	msgAppointmentGone   = "❌ Запись не найдена. Возможно, она уже отменена."
	msgCancelDone        = "✅ *Запись отменена.*"
	msgInternalError     = "❌ Произошла ошибка. Попробуйте снова."
	msgAccessDenied      = "❌ *Доступ запрещён.*"
	msgSelectRateBarber  = "⭐ *Выберите мастера для оценки:*"
	msgSelectRating      = "⭐ *Выберите оценку:*"
	msgRecentReviews     = "💬 *Последние отзывы:*"
	msgEnterComment      = "💬 Введите комментарий к отзыву (или «-», чтобы пропустить):"
	msgReviewSaved       = "✅ *Спасибо за отзыв!*"
	msgAdminMenu         = "👑 *Панель администратора:*"
	msgAdminBarbers      = "👤 *Управление мастерами:*"
	msgAdminServices     = "✂️ *Управление услугами:*"
	msgEnterBarberName   = "➕ *Введите имя мастера:*"
	msgEmptyBarberName   = "❌ *Ошибка:* Имя мастера не может быть пустым."
	msgEnterTelegramID   = "Теперь введите Telegram ID (числа) или username (начинается с @):"
	msgBadTelegramID     = "❌ *Неверный формат.* Введите Telegram ID (числа) или username (начинается с @)."
	msgEnterSchedule     = "📅 *Введите новый график:* в формате 'Пн-Пт 09:00-18:00' или 'Пн,Ср,Пт 10:00-17:00'"
	msgBadSchedule       = "❌ *Неверный формат.* Пример: 'Пн-Пт 09:00-18:00'"
	msgScheduleUpdated   = "✅ *График мастера обновлён.*"
	msgEnterCategoryName = "➕ *Введите название категории:*"
	msgEnterServiceData  = "➕ *Введите услугу* в формате 'Название;Цена;Длительность в минутах':"
	msgBadServiceData    = "❌ *Неверный формат.* Пример: 'Стрижка;1500;60'"
	msgEnterBroadcast    = "📢 *Введите текст для рассылки всем пользователям:*"
	msgNoBarbersToManage = "😔 Нет мастеров для управления графиком."

	labelBack = "🔙 Назад"

	captionMyAppointments  = "📋 Ваши записи"
	captionAllAppointments = "📋 Все записи"
)
