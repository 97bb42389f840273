package dialog

import (
	"sync"
	"time"
)

// Store потокобезопасное in-memory хранилище сессий, ключ - Telegram ID
// пользователя. Сессии разных пользователей полностью изолированы.
// ttl = 0 отключает истечение по неактивности
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore создает новое хранилище сессий
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get возвращает сессию пользователя. Истекшая сессия удаляется и не возвращается
func (s *Store) Get(userID string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.ttl > 0 && s.now().Sub(session.UpdatedAt) > s.ttl {
		s.Delete(userID)
		return nil, false
	}
	return session, true
}

// Put сохраняет сессию, обновляя отметку активности
func (s *Store) Put(session *Session) {
	session.UpdatedAt = s.now()
	s.mu.Lock()
	s.sessions[session.UserID] = session
	s.mu.Unlock()
}

// Delete удаляет сессию пользователя
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// PurgeExpired удаляет все истекшие сессии и возвращает количество удаленных
func (s *Store) PurgeExpired() int {
	if s.ttl == 0 {
		return 0
	}

	now := s.now()
	purged := 0

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if now.Sub(session.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged
}

// Len возвращает количество активных сессий
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
