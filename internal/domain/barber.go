package domain

import "encoding/json"

// Barber мастер барбершопа
type Barber struct {
	ID          int64
	Name        string
	TelegramID  string // уникален среди всех мастеров
	IsActive    bool
	Schedule    ScheduleDescriptor
	Rating      float64 // накопленное среднее по отзывам
	RatingCount int
}

// ScheduleDescriptor описание графика работы мастера
// Хранится в БД как JSON: {"days": "Пн-Вс", "hours": "09:00-18:00"}
type ScheduleDescriptor struct {
	// Days рабочие дни в свободной форме ("Пн-Вс", "Пн-Пт").
	// При генерации слотов не учитывается: каждая дата получает один и тот же
	// диапазон часов независимо от дня недели.
	// TODO: сверять день недели запрошенной даты с Days перед генерацией слотов
	Days string `json:"days"`
	// Hours диапазон "HH:MM-HH:MM"
	Hours string `json:"hours"`
}

// DefaultSchedule возвращает расписание по умолчанию для нового мастера
func DefaultSchedule() ScheduleDescriptor {
	return ScheduleDescriptor{Days: DefaultScheduleDays, Hours: DefaultScheduleHours}
}

// ParseScheduleDescriptor разбирает JSON-представление расписания
func ParseScheduleDescriptor(raw string) (ScheduleDescriptor, error) {
	var d ScheduleDescriptor
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return ScheduleDescriptor{}, err
	}
	return d, nil
}

// Encode возвращает JSON-представление расписания для хранения в БД
func (d ScheduleDescriptor) Encode() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
