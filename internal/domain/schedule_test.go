package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHourRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := ParseHourRange("09:00-18:00")
		require.NoError(t, err)
		assert.Equal(t, 9, r.Open)
		assert.Equal(t, 18, r.Close)
	})

	t.Run("minutes are truncated", func(t *testing.T) {
		r, err := ParseHourRange("09:30-18:45")
		require.NoError(t, err)
		assert.Equal(t, 9, r.Open)
		assert.Equal(t, 18, r.Close)
	})

	t.Run("missing dash", func(t *testing.T) {
		_, err := ParseHourRange("09:00")
		assert.Error(t, err)
	})

	t.Run("garbage hour", func(t *testing.T) {
		_, err := ParseHourRange("ab:00-18:00")
		assert.Error(t, err)
	})

	t.Run("hour out of range", func(t *testing.T) {
		_, err := ParseHourRange("09:00-25:00")
		assert.Error(t, err)
	})
}

func TestSlotTimes(t *testing.T) {
	t.Run("full day grid", func(t *testing.T) {
		slots := SlotTimes(ScheduleDescriptor{Days: "Пн-Вс", Hours: "09:00-18:00"})
		// 9 часов по два слота в час
		require.Len(t, slots, 18)
		assert.Equal(t, "09:00", slots[0].String())
		assert.Equal(t, "09:30", slots[1].String())
		assert.Equal(t, "17:30", slots[17].String())
	})

	t.Run("closing slot excluded", func(t *testing.T) {
		slots := SlotTimes(ScheduleDescriptor{Hours: "10:00-11:00"})
		require.Len(t, slots, 2)
		assert.Equal(t, "10:00", slots[0].String())
		assert.Equal(t, "10:30", slots[1].String())
	})

	t.Run("truncated minutes give same grid", func(t *testing.T) {
		exact := SlotTimes(ScheduleDescriptor{Hours: "09:00-18:00"})
		truncated := SlotTimes(ScheduleDescriptor{Hours: "09:30-18:30"})
		assert.Equal(t, exact, truncated)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		assert.Empty(t, SlotTimes(ScheduleDescriptor{Hours: "18:00-09:00"}))
	})

	t.Run("zero-width range is empty", func(t *testing.T) {
		assert.Empty(t, SlotTimes(ScheduleDescriptor{Hours: "09:00-09:00"}))
	})

	t.Run("malformed hours are empty", func(t *testing.T) {
		assert.Empty(t, SlotTimes(ScheduleDescriptor{Hours: "круглосуточно"}))
		assert.Empty(t, SlotTimes(ScheduleDescriptor{}))
	})
}

func TestScheduleDescriptorRoundtrip(t *testing.T) {
	d := ScheduleDescriptor{Days: "Пн-Пт", Hours: "10:00-19:00"}

	encoded, err := d.Encode()
	require.NoError(t, err)

	parsed, err := ParseScheduleDescriptor(encoded)
	require.NoError(t, err)
	assert.Equal(t, d, parsed)
}

func TestParseScheduleDescriptorInvalid(t *testing.T) {
	_, err := ParseScheduleDescriptor("not json")
	assert.Error(t, err)
}
