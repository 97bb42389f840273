package domain

import "time"

// Review отзыв клиента о мастере. Только добавление, без редактирования
type Review struct {
	ID         int64
	BarberID   int64
	ClientName string
	Rating     int // MinRating..MaxRating
	Comment    *string
	Date       time.Time
}
