package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/werybos/barbershop-bot/pkg/types"
)

// HourRange диапазон рабочих часов мастера, усеченный до целых часов
type HourRange struct {
	Open  int // час открытия, включительно
	Close int // час закрытия, исключительно
}

// IsEmpty возвращает true, если диапазон не содержит ни одного слота
func (r HourRange) IsEmpty() bool {
	return r.Open >= r.Close
}

// ParseHourRange разбирает поле hours вида "09:00-18:00".
// Минуты в границах разбираются, но отбрасываются - диапазон усекается
// до целых часов ("09:30-18:30" дает те же слоты, что "09:00-18:00").
func ParseHourRange(hours string) (HourRange, error) {
	parts := strings.SplitN(hours, "-", 2)
	if len(parts) != 2 {
		return HourRange{}, fmt.Errorf("schedule: invalid hours %q, expected HH:MM-HH:MM", hours)
	}

	open, err := parseHour(parts[0])
	if err != nil {
		return HourRange{}, err
	}
	closeH, err := parseHour(parts[1])
	if err != nil {
		return HourRange{}, err
	}

	return HourRange{Open: open, Close: closeH}, nil
}

func parseHour(s string) (int, error) {
	hh := strings.SplitN(strings.TrimSpace(s), ":", 2)[0]
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("schedule: invalid hour %q", s)
	}
	return h, nil
}

// SlotTimes генерирует упорядоченный набор времен начала слотов для расписания:
// каждые SlotStepMinutes минут от часа открытия (включительно) до часа
// закрытия (исключительно). Для некорректного или пустого диапазона
// возвращает пустой срез, а не ошибку - для таких расписаний записываться
// просто не на что.
func SlotTimes(d ScheduleDescriptor) []types.TimeString {
	r, err := ParseHourRange(d.Hours)
	if err != nil || r.IsEmpty() {
		return nil
	}

	slots := make([]types.TimeString, 0, (r.Close-r.Open)*60/SlotStepMinutes)
	for m := r.Open * 60; m < r.Close*60; m += SlotStepMinutes {
		slots = append(slots, types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)))
	}
	return slots
}
