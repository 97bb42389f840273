package get_available_slots

import (
	"time"

	"github.com/werybos/barbershop-bot/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	BarberID int64     // ID мастера
	Date     time.Time // дата визита (без времени)
}

// Slot слот сетки с признаком занятости
type Slot struct {
	Time   types.TimeString
	Booked bool
}

// Response упорядоченный по времени список слотов на день
type Response struct {
	BarberID int64
	Date     time.Time
	Slots    []Slot
}

// HasFree возвращает true, если в ответе есть хотя бы один свободный слот
func (r *Response) HasFree() bool {
	for _, s := range r.Slots {
		if !s.Booked {
			return true
		}
	}
	return false
}
