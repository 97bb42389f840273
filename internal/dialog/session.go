package dialog

import (
	"time"

	"github.com/werybos/barbershop-bot/pkg/types"
)

// State состояние диалога бронирования
type State int

const (
	// StateSelectBarber выбор мастера
	StateSelectBarber State = iota
	// StateSelectDate выбор дня (сегодня / завтра / другая дата)
	StateSelectDate
	// StateEnterDate ожидание ввода даты в формате ДД.ММ.ГГГГ
	StateEnterDate
	// StateSelectTime выбор слота
	StateSelectTime
	// StateSelectCategory выбор категории услуг (подшаг выбора услуги)
	StateSelectCategory
	// StateSelectService выбор услуги
	StateSelectService
	// StateEnterName ожидание ввода имени
	StateEnterName
	// StateEnterPhone ожидание ввода телефона; валидный номер запускает коммит
	StateEnterPhone
)

// String имя состояния для логов и метрик
func (s State) String() string {
	switch s {
	case StateSelectBarber:
		return "select_barber"
	case StateSelectDate:
		return "select_date"
	case StateEnterDate:
		return "enter_date"
	case StateSelectTime:
		return "select_time"
	case StateSelectCategory:
		return "select_category"
	case StateSelectService:
		return "select_service"
	case StateEnterName:
		return "enter_name"
	case StateEnterPhone:
		return "enter_phone"
	default:
		return "unknown"
	}
}

// Session накопленные выборы одного пользователя в текущем диалоге.
// Живет от начала диалога до коммита, отмены или истечения TTL
// и никогда не переживает их
type Session struct {
	UserID     string
	State      State
	BarberID   int64
	Date       time.Time
	Time       types.TimeString
	CategoryID *int64
	ServiceID  int64
	ClientName string
	UpdatedAt  time.Time
}
