package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics счетчики бизнес-событий бота
type Metrics struct {
	DialogueTurns    *prometheus.CounterVec
	BookingsCreated  prometheus.Counter
	BookingConflicts prometheus.Counter
	Archived         prometheus.Counter
	ReviewsAdded     prometheus.Counter
}

// IncDialogueTurn учитывает обработанный шаг диалога
func (m *Metrics) IncDialogueTurn(state string) {
	m.DialogueTurns.WithLabelValues(state).Inc()
}

// IncBookingCreated учитывает успешно созданную запись
func (m *Metrics) IncBookingCreated() {
	m.BookingsCreated.Inc()
}

// IncBookingConflict учитывает конфликт занятого слота при коммите
func (m *Metrics) IncBookingConflict() {
	m.BookingConflicts.Inc()
}

// AddArchived учитывает перенесенные в архив записи
func (m *Metrics) AddArchived(n int) {
	m.Archived.Add(float64(n))
}

// IncReviewAdded учитывает добавленный отзыв
func (m *Metrics) IncReviewAdded() {
	m.ReviewsAdded.Inc()
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		DialogueTurns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bot_dialogue_turns_total",
			Help:        "Количество обработанных шагов диалога по состояниям",
			ConstLabels: labels,
		}, []string{"state"}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_bookings_created_total",
			Help:        "Количество успешно созданных записей",
			ConstLabels: labels,
		}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_booking_conflicts_total",
			Help:        "Количество конфликтов при создании записи (слот уже занят)",
			ConstLabels: labels,
		}),
		Archived: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_appointments_archived_total",
			Help:        "Количество записей, перенесенных в архив",
			ConstLabels: labels,
		}),
		ReviewsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_reviews_added_total",
			Help:        "Количество добавленных отзывов",
			ConstLabels: labels,
		}),
	}
}
