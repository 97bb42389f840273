package create_appointment

import (
	"time"

	"github.com/werybos/barbershop-bot/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID      string           // Telegram ID клиента
	ClientName  string           // имя, введенное клиентом
	ClientPhone string           // сырой ввод, нормализуется внутри usecase
	BarberID    int64            // ID мастера
	ServiceID   int64            // ID услуги
	Date        time.Time        // дата визита (без времени)
	Time        types.TimeString // время начала слота
}

// Response созданная запись с денормализованными данными для подтверждения
type Response struct {
	ID          int64
	BarberName  string
	ServiceName string
	Price       int
	Duration    int
	Date        time.Time
	Time        types.TimeString
	ClientName  string
	ClientPhone string // нормализованный номер
}
