package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	review "github.com/werybos/barbershop-bot/internal/usecase/add_review"
)

// recentReviewsLimit сколько последних отзывов показывать на экране оценки
const recentReviewsLimit = 3

// sendRateBarberList список активных мастеров с текущим рейтингом
func (b *Bot) sendRateBarberList(ctx context.Context, chatID int64) {
	barbers, err := b.barberRepo.ListActive(ctx)
	if err != nil {
		b.logger.Error("telegram: failed to list barbers for rating: %v", err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_start"))
		return
	}
	if len(barbers) == 0 {
		b.send(chatID, msgNoBarbers, backKeyboard("back_to_start"))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(barbers)+1)
	for _, barber := range barbers {
		label := barber.Name
		if barber.RatingCount > 0 {
			label = fmt.Sprintf("%s (⭐ %.1f)", barber.Name, barber.Rating)
		}
		rows = append(rows, row(button(label, fmt.Sprintf("rate_barber_%d", barber.ID))))
	}
	rows = append(rows, row(button(labelBack, "back_to_start")))

	b.send(chatID, msgSelectRateBarber, keyboard(rows...))
}

// sendRatingButtons показывает последние отзывы мастера и кнопки оценки
func (b *Bot) sendRatingButtons(ctx context.Context, chatID int64, data string) {
	barberID, err := strconv.ParseInt(strings.TrimPrefix(data, "rate_barber_"), 10, 64)
	if err != nil {
		b.logger.Warn("telegram: bad callback data %q: %v", data, err)
		return
	}

	text := msgSelectRating
	if reviews, err := b.reviewRepo.ListByBarber(ctx, barberID, recentReviewsLimit); err != nil {
		b.logger.Error("telegram: failed to list reviews, barber=%d: %v", barberID, err)
	} else if len(reviews) > 0 {
		var sb strings.Builder
		sb.WriteString(msgRecentReviews)
		for _, r := range reviews {
			sb.WriteString(fmt.Sprintf("\n%s — %s", strings.Repeat("⭐", r.Rating), r.ClientName))
			if r.Comment != nil {
				sb.WriteString(fmt.Sprintf(": _%s_", *r.Comment))
			}
		}
		text = sb.String() + "\n\n" + msgSelectRating
	}

	stars := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		stars = append(stars, button(
			strings.Repeat("⭐", rating),
			fmt.Sprintf("rating_%d_%d", barberID, rating),
		))
	}

	b.send(chatID, text, keyboard(row(stars...), row(button(labelBack, "rate_barber"))))
}

// handleRatingChoice фиксирует оценку и запрашивает комментарий
func (b *Bot) handleRatingChoice(chatID, userID int64, data string) {
	parts := strings.Split(strings.TrimPrefix(data, "rating_"), "_")
	if len(parts) != 2 {
		b.logger.Warn("telegram: bad rating callback %q", data)
		return
	}
	barberID, err1 := strconv.ParseInt(parts[0], 10, 64)
	rating, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		b.logger.Warn("telegram: bad rating callback %q", data)
		return
	}

	b.pending.Set(userID, &pendingInput{
		Kind:     pendingReviewComment,
		BarberID: barberID,
		Rating:   rating,
	})
	b.send(chatID, msgEnterComment, backKeyboard("back_to_start"))
}

func (b *Bot) saveReview(ctx context.Context, chatID int64, input *pendingInput, clientName, text string) {
	var comment *string
	if trimmed := strings.TrimSpace(text); trimmed != "" && trimmed != "-" {
		comment = &trimmed
	}

	_, err := b.reviewAdder.Execute(ctx, &review.Request{
		BarberID:   input.BarberID,
		ClientName: clientName,
		Rating:     input.Rating,
		Comment:    comment,
	})
	if err != nil {
		b.logger.Error("telegram: failed to add review, barber=%d: %v", input.BarberID, err)
		b.send(chatID, msgInternalError, backKeyboard("back_to_start"))
		return
	}

	if b.metrics != nil {
		b.metrics.IncReviewAdded()
	}
	b.send(chatID, msgReviewSaved, backKeyboard("back_to_start"))
}
