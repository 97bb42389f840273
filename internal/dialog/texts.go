package dialog

// Тексты шагов диалога бронирования
const (
	msgSelectBarber    = "💇‍♂️ *Выберите мастера:*"
	msgSelectDate      = "📅 *Выберите день записи:*"
	msgEnterDate       = "📅 Введите дату в формате ДД.ММ.ГГГГ:"
	msgInvalidDate     = "❌ Неверный формат даты. Пример: 25.12.2025"
	msgSelectTime      = "⏰ *Выберите время (❌ - занято):*"
	msgNoSlots         = "😔 Нет доступного времени на выбранный день."
	msgSlotBooked      = "❌ Это время уже занято. Выберите другое."
	msgSlotConflict    = "❌ Это время только что заняли. Выберите другое:"
	msgSelectCategory  = "📋 *Выберите категорию услуг:*"
	msgSelectService   = "✂️ *Выберите услугу:*"
	msgNoServices      = "😔 Нет доступных услуг."
	msgCategoryEmpty   = "😔 В этой категории нет услуг."
	msgEnterName       = "👤 *Введите ваше имя:*"
	msgEmptyName       = "❌ *Имя не может быть пустым.* Введите ваше имя:"
	msgInvalidPhone    = "❌ *Неверный формат номера.* Пример: +79991234567"
	labelToday         = "Сегодня"
	labelTomorrow      = "Завтра"
	labelOtherDates    = "Другие даты"
)
