package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	store := NewStore(30 * time.Minute)

	store.Put(&Session{UserID: "1", State: StateSelectBarber})

	session, ok := store.Get("1")
	require.True(t, ok)
	assert.Equal(t, StateSelectBarber, session.State)
	assert.False(t, session.UpdatedAt.IsZero())

	_, ok = store.Get("2")
	assert.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(30 * time.Minute)

	current := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Put(&Session{UserID: "1"})

	// Через 29 минут сессия еще жива
	current = current.Add(29 * time.Minute)
	_, ok := store.Get("1")
	assert.True(t, ok)

	// Через 31 минуту после последнего Put - истекла
	current = current.Add(2 * time.Minute)
	_, ok = store.Get("1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStorePutRefreshesTTL(t *testing.T) {
	store := NewStore(30 * time.Minute)

	current := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	session := &Session{UserID: "1"}
	store.Put(session)

	current = current.Add(20 * time.Minute)
	store.Put(session)

	// 25 минут после обновления, 45 после создания - жива
	current = current.Add(25 * time.Minute)
	_, ok := store.Get("1")
	assert.True(t, ok)
}

func TestStorePurgeExpired(t *testing.T) {
	store := NewStore(30 * time.Minute)

	current := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Put(&Session{UserID: "old"})
	current = current.Add(40 * time.Minute)
	store.Put(&Session{UserID: "fresh"})

	assert.Equal(t, 1, store.PurgeExpired())
	assert.Equal(t, 1, store.Len())

	_, ok := store.Get("fresh")
	assert.True(t, ok)
}

func TestStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewStore(0)

	current := time.Date(2025, 7, 26, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Put(&Session{UserID: "1"})
	current = current.Add(1000 * time.Hour)

	_, ok := store.Get("1")
	assert.True(t, ok)
	assert.Equal(t, 0, store.PurgeExpired())
}

func TestStoreUserIsolation(t *testing.T) {
	store := NewStore(time.Hour)

	store.Put(&Session{UserID: "1", BarberID: 10})
	store.Put(&Session{UserID: "2", BarberID: 20})

	first, ok := store.Get("1")
	require.True(t, ok)
	second, ok := store.Get("2")
	require.True(t, ok)

	assert.Equal(t, int64(10), first.BarberID)
	assert.Equal(t, int64(20), second.BarberID)

	store.Delete("1")
	_, ok = store.Get("1")
	assert.False(t, ok)
	_, ok = store.Get("2")
	assert.True(t, ok)
}
