package dialog

import (
	create "github.com/werybos/barbershop-bot/internal/usecase/create_appointment"
)

// Option кнопка, предлагаемая пользователю на очередном шаге
type Option struct {
	Token string // токен, который вернется при нажатии
	Label string // текст кнопки
}

// Prompt ответ движка на шаг диалога: текст и набор вариантов
// (построчно, для раскладки клавиатуры) либо ожидание свободного ввода
type Prompt struct {
	Text       string
	Options    [][]Option
	ExpectText bool
	// Done диалог завершен коммитом; Appointment содержит созданную запись
	Done        bool
	Appointment *create.Response
}

// Токены вариантов, не несущие ID
const (
	TokenDateToday    = "date_today"
	TokenDateTomorrow = "date_tomorrow"
	TokenDateOther    = "date_other"
	TokenTimeBooked   = "time_booked"
	TokenBack         = "back_to_start"
)
