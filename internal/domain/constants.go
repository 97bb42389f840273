package domain

// Параметры сетки слотов
const (
	// SlotStepMinutes шаг сетки слотов. Длительность услуги на сетку не влияет -
	// услуга длиннее шага не блокирует следующий слот
	SlotStepMinutes = 30
)

// Форматы дат и времени
const (
	TimeFormat      = "15:04"      // HH:MM
	DateFormat      = "2006-01-02" // YYYY-MM-DD (хранение)
	InputDateFormat = "02.01.2006" // DD.MM.YYYY (ввод пользователя)
	TimestampFormat = "2006-01-02 15:04:05"
)

// Валидация телефона
const (
	// MinPhoneLength минимальная длина номера после нормализации (включая "+")
	MinPhoneLength = 8
)

// Расписание мастера по умолчанию
const (
	DefaultScheduleDays  = "Пн-Вс"
	DefaultScheduleHours = "09:00-18:00"
)

// Оценки отзывов
const (
	MinRating = 1
	MaxRating = 5
)
