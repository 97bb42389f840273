package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleInput(t *testing.T) {
	t.Run("days range", func(t *testing.T) {
		d, ok := parseScheduleInput("Пн-Пт 09:00-18:00")
		require.True(t, ok)
		assert.Equal(t, "Пн-Пт", d.Days)
		assert.Equal(t, "09:00-18:00", d.Hours)
	})

	t.Run("days list", func(t *testing.T) {
		d, ok := parseScheduleInput("Пн,Ср,Пт 10:00-17:00")
		require.True(t, ok)
		assert.Equal(t, "Пн,Ср,Пт", d.Days)
	})

	t.Run("missing hours", func(t *testing.T) {
		_, ok := parseScheduleInput("Пн-Пт")
		assert.False(t, ok)
	})

	t.Run("bad hours", func(t *testing.T) {
		_, ok := parseScheduleInput("Пн-Пт круглосуточно")
		assert.False(t, ok)
	})

	t.Run("inverted hours", func(t *testing.T) {
		_, ok := parseScheduleInput("Пн-Пт 18:00-09:00")
		assert.False(t, ok)
	})
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("123456789"))
	assert.False(t, isDigits("@username"))
	assert.False(t, isDigits("12a"))
	assert.False(t, isDigits(""))
}

func TestPendingStore(t *testing.T) {
	store := newPendingStore()

	store.Set(1, &pendingInput{Kind: pendingBroadcast})

	input, ok := store.Take(1)
	require.True(t, ok)
	assert.Equal(t, pendingBroadcast, input.Kind)

	// Take забирает запись
	_, ok = store.Take(1)
	assert.False(t, ok)

	store.Set(2, &pendingInput{Kind: pendingBarberName})
	store.Clear(2)
	_, ok = store.Take(2)
	assert.False(t, ok)
}
