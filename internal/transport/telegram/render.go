package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/werybos/barbershop-bot/internal/dialog"
)

// promptKeyboard собирает inline-клавиатуру из вариантов Prompt.
// backToken != "" добавляет ряд с кнопкой "Назад"
func promptKeyboard(prompt *dialog.Prompt, backToken string) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(prompt.Options)+1)
	for _, row := range prompt.Options {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, opt := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Token))
		}
		rows = append(rows, buttons)
	}
	if backToken != "" {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(labelBack, backToken),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func keyboard(rows ...[]tgbotapi.InlineKeyboardButton) *tgbotapi.InlineKeyboardMarkup {
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func row(buttons ...tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	return buttons
}

func button(label, token string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, token)
}

func backKeyboard(token string) *tgbotapi.InlineKeyboardMarkup {
	return keyboard(row(button(labelBack, token)))
}
