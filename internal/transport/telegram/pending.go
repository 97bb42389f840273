package telegram

import "sync"

// pendingKind вид текстового ввода, которого бот ждет от пользователя
// вне диалога бронирования
type pendingKind int

const (
	pendingBarberName pendingKind = iota
	pendingBarberTelegram
	pendingSchedule
	pendingCategoryName
	pendingServiceData
	pendingBroadcast
	pendingReviewComment
)

// pendingInput накопленный контекст многошагового ввода.
// Для админских сценариев и комментария к отзыву
type pendingInput struct {
	Kind       pendingKind
	BarberName string // имя нового мастера между шагами добавления
	BarberID   int64  // мастер, чей график меняется или кому ставится оценка
	CategoryID *int64 // категория новой услуги
	Rating     int    // выбранная оценка отзыва
}

// pendingStore ожидаемые текстовые вводы по пользователям.
// В отличие от диалоговых сессий, без TTL: записи живут до завершения
// или замены следующим сценарием
type pendingStore struct {
	mu     sync.Mutex
	inputs map[int64]*pendingInput
}

func newPendingStore() *pendingStore {
	return &pendingStore{inputs: make(map[int64]*pendingInput)}
}

func (s *pendingStore) Set(userID int64, input *pendingInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs[userID] = input
}

func (s *pendingStore) Take(userID int64) (*pendingInput, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	input, ok := s.inputs[userID]
	if ok {
		delete(s.inputs, userID)
	}
	return input, ok
}

func (s *pendingStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inputs, userID)
}
