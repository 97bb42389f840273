package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Run("canonical number passes through", func(t *testing.T) {
		phone, err := NormalizePhone("+79991234567")
		require.NoError(t, err)
		assert.Equal(t, "+79991234567", phone)
	})

	t.Run("separators are stripped", func(t *testing.T) {
		phone, err := NormalizePhone("+7 (999) 123-45-67")
		require.NoError(t, err)
		assert.Equal(t, "+79991234567", phone)
	})

	t.Run("surrounding whitespace ignored", func(t *testing.T) {
		phone, err := NormalizePhone("  +79991234567  ")
		require.NoError(t, err)
		assert.Equal(t, "+79991234567", phone)
	})

	t.Run("missing plus rejected", func(t *testing.T) {
		_, err := NormalizePhone("89991234567")
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("too short rejected", func(t *testing.T) {
		_, err := NormalizePhone("+7999")
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := NormalizePhone("")
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("letters only rejected", func(t *testing.T) {
		_, err := NormalizePhone("позвоните мне")
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})
}
